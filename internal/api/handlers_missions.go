package api

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/repository"
)

func missionList(ms []*domain.Mission) []Mission {
	out := make([]Mission, 0, len(ms))
	for _, m := range ms {
		out = append(out, MissionFromDomain(m))
	}
	return out
}

// listMissions serves GET /missions?is_completed=true|false&order=asc|desc.
func (h *handlers) listMissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var completed *bool
	if v := q.Get("is_completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "is_completed must be true or false")
			return
		}
		completed = &b
	}
	order := q.Get("order")
	if order != "" && order != "asc" && order != "desc" {
		writeError(w, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	var (
		ms  []*domain.Mission
		err error
	)
	if completed != nil && !*completed {
		ms, err = h.deps.Missions.ListPending(r.Context())
	} else {
		ms, err = h.deps.Missions.List(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if completed != nil && *completed {
		ms = slices.DeleteFunc(ms, func(m *domain.Mission) bool { return !m.IsCompleted })
	}
	if order == "desc" {
		slices.Reverse(ms)
	}
	writeJSON(w, http.StatusOK, missionList(ms))
}

func (h *handlers) createMission(w http.ResponseWriter, r *http.Request) {
	var req CreateMissionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	m, err := h.deps.Missions.Create(r.Context(), req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MissionFromDomain(m))
}

func (h *handlers) getMission(w http.ResponseWriter, r *http.Request) {
	m, err := h.deps.Missions.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MissionFromDomain(m))
}

func (h *handlers) patchMission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch repository.MissionPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Empty() {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	ctx := r.Context()
	if patch.Title != nil {
		if err := h.deps.Missions.Rename(ctx, id, *patch.Title); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	if patch.IsCompleted != nil {
		if err := h.deps.Missions.SetCompleted(ctx, id, *patch.IsCompleted); err != nil {
			writeServiceError(w, err)
			return
		}
	}

	m, err := h.deps.Missions.GetByID(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MissionFromDomain(m))
}

func (h *handlers) deleteMission(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Missions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
