package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/domain"
	"github.com/vocuz/vocuz/internal/repository"
	"github.com/vocuz/vocuz/internal/service"
)

const maxBodyBytes = 1 << 20

// errorCodes maps sentinel errors to HTTP statuses and stable codes. The
// remote client reverses the mapping with ErrorForCode.
var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{repository.ErrNotFound, http.StatusNotFound, "not_found"},
	{service.ErrNotAuthenticated, http.StatusUnauthorized, "unauthenticated"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{auth.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{auth.ErrEmailTaken, http.StatusConflict, "email_taken"},
	{repository.ErrDuplicate, http.StatusConflict, "duplicate"},
	{auth.ErrWeakPassword, http.StatusBadRequest, "weak_password"},
	{auth.ErrInvalidEmail, http.StatusBadRequest, "invalid_email"},
	{domain.ErrEmptyTitle, http.StatusBadRequest, "empty_title"},
	{domain.ErrUnknownMode, http.StatusBadRequest, "invalid_mode"},
	{domain.ErrInvalidSettings, http.StatusBadRequest, "invalid_input"},
}

// ErrorForCode returns the sentinel error for a response code, or nil.
func ErrorForCode(code string) error {
	for _, e := range errorCodes {
		if e.code == code {
			return e.err
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: http.StatusText(status)})
}

// writeServiceError picks the status for err from errorCodes; anything
// unknown is a 500 without details.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			writeJSON(w, e.status, ErrorResponse{Error: err.Error(), Code: e.code})
			return
		}
	}
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}
