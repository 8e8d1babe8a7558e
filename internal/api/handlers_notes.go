package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vocuz/vocuz/internal/domain"
)

func (h *handlers) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.deps.Notes.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteFromDomain(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handlers) createNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n := &domain.Note{Title: req.Title, Description: req.Description}
	if err := h.deps.Notes.Save(r.Context(), n); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NoteFromDomain(n))
}

func (h *handlers) getNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.deps.Notes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NoteFromDomain(n))
}

func (h *handlers) updateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n := &domain.Note{ID: chi.URLParam(r, "id"), Title: req.Title, Description: req.Description}
	if err := h.deps.Notes.Save(r.Context(), n); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NoteFromDomain(n))
}

func (h *handlers) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Notes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
