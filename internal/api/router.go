package api

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds everything the handlers need.
type Deps struct {
	Auth     auth.Authenticator
	Missions service.MissionService
	Sessions service.SessionLogService
	Notes    service.NoteService
	DB       Pinger
}

// NewRouter creates a configured chi router with all routes.
func NewRouter(deps Deps, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	h := &handlers{deps: deps, logger: logger}

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.signUp)
		r.Post("/login", h.login)
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(deps.Auth))
			r.Post("/logout", h.logout)
			r.Get("/me", h.me)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Auth))

		r.Route("/missions", func(r chi.Router) {
			r.Get("/", h.listMissions)
			r.Post("/", h.createMission)
			r.Get("/{id}", h.getMission)
			r.Patch("/{id}", h.patchMission)
			r.Delete("/{id}", h.deleteMission)
		})

		r.Route("/focus_sessions", func(r chi.Router) {
			r.Get("/", h.listFocusSessions)
			r.Post("/", h.logFocusSession)
			r.Get("/summary", h.focusSummary)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)
			r.Get("/{id}", h.getNote)
			r.Patch("/{id}", h.updateNote)
			r.Delete("/{id}", h.deleteNote)
		})
	})

	return r
}

type handlers struct {
	deps   Deps
	logger *slog.Logger
}
