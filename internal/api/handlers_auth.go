package api

import (
	"net/http"

	"github.com/vocuz/vocuz/internal/auth"
)

func sessionResponse(s *auth.Session) SessionResponse {
	return SessionResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: UserFromDomain(s.User)}
}

func (h *handlers) signUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := h.deps.Auth.SignUp(r.Context(), auth.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse(sess))
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := h.deps.Auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(sess))
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Auth.SignOut(r.Context(), currentToken(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UserFromDomain(currentUser(r)))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", DB: ServiceCheck{Status: "ok"}}
	status := http.StatusOK
	if h.deps.DB != nil {
		if err := h.deps.DB.PingContext(r.Context()); err != nil {
			resp.Status = "unhealthy"
			resp.DB = ServiceCheck{Status: "error", Message: err.Error()}
			status = http.StatusServiceUnavailable
		}
	}
	writeJSON(w, status, resp)
}
