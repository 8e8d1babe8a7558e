package api

import (
	"net/http"
	"strconv"

	"github.com/vocuz/vocuz/internal/domain"
)

const defaultHistoryDays = 7

func daysParam(r *http.Request) (int, bool) {
	v := r.URL.Query().Get("days")
	if v == "" {
		return defaultHistoryDays, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// listFocusSessions serves GET /focus_sessions?days=N or ?mission_id=ID.
func (h *handlers) listFocusSessions(w http.ResponseWriter, r *http.Request) {
	var (
		sessions []*domain.FocusSession
		err      error
	)
	if missionID := r.URL.Query().Get("mission_id"); missionID != "" {
		sessions, err = h.deps.Sessions.ListByMission(r.Context(), missionID)
	} else {
		days, ok := daysParam(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		sessions, err = h.deps.Sessions.ListRecent(r.Context(), days)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]FocusSession, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, FocusSessionFromDomain(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) logFocusSession(w http.ResponseWriter, r *http.Request) {
	var req FocusSession
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s := req.ToDomain()
	s.ID = ""
	if err := h.deps.Sessions.Log(r.Context(), s); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, FocusSessionFromDomain(s))
}

func (h *handlers) focusSummary(w http.ResponseWriter, r *http.Request) {
	days, ok := daysParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
		return
	}
	stats, err := h.deps.Sessions.Stats(r.Context(), days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]ModeSummary, 0, len(stats.ByMode))
	for _, m := range stats.ByMode {
		out = append(out, ModeSummary{Mode: m.Mode, SessionCount: m.SessionCount, TotalMinutes: m.TotalMinutes})
	}
	writeJSON(w, http.StatusOK, out)
}
