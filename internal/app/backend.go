// Package app assembles the services of one storage backend: the local
// SQLite database or a remote vocuz API.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vocuz/vocuz/internal/api"
	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/config"
	"github.com/vocuz/vocuz/internal/db"
	"github.com/vocuz/vocuz/internal/remote"
	"github.com/vocuz/vocuz/internal/repository"
	"github.com/vocuz/vocuz/internal/service"
)

// Backend holds the use cases of one backend. Services are identical for
// both kinds; only the stores behind them differ.
type Backend struct {
	Kind     string
	Missions service.MissionService
	Notes    service.NoteService
	Sessions service.SessionLogService
	Profile  service.ProfileService
	Auth     auth.Authenticator

	// Set for the local backend only.
	DB      *sql.DB
	Pruner  TokenPruner
	ownedDB bool

	// Set for the remote backend only.
	Client *remote.Client
}

// TokenPruner drops expired bearer tokens.
type TokenPruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

// Open builds the backend selected by cfg. token is the stored bearer token
// and only matters for the remote backend.
func Open(cfg *config.Config, token string, logger *slog.Logger) (*Backend, error) {
	switch cfg.Backend {
	case config.BackendRemote:
		return NewRemote(remote.NewClient(cfg.APIURL, remote.WithToken(token)), logger), nil
	case config.BackendLocal:
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		b := NewLocal(database, logger)
		b.ownedDB = true
		return b, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// NewLocal wires the services over an open database. The caller keeps
// ownership of database.
func NewLocal(database *sql.DB, logger *slog.Logger, authOpts ...auth.Option) *Backend {
	obs := service.NewLogUseCaseObserver(logger)

	missions := repository.NewSQLiteMissionRepo(database)
	users := repository.NewSQLiteUserRepo(database)
	sessions := service.NewSessionLogService(repository.NewSQLiteFocusSessionRepo(database), missions, obs)
	authSvc := auth.NewService(users, repository.NewSQLiteTokenRepo(database), db.NewSQLiteUnitOfWork(database), authOpts...)

	return &Backend{
		Kind:     config.BackendLocal,
		Missions: service.NewMissionService(missions, obs),
		Notes:    service.NewNoteService(repository.NewSQLiteNoteRepo(database), obs),
		Sessions: sessions,
		Profile:  service.NewProfileService(users, sessions),
		Auth:     authSvc,
		DB:       database,
		Pruner:   authSvc,
	}
}

// NewRemote wires the services over an API client.
func NewRemote(client *remote.Client, logger *slog.Logger) *Backend {
	obs := service.NewLogUseCaseObserver(logger)
	sessions := service.NewSessionLogService(client.Sessions(), client.Missions(), obs)
	return &Backend{
		Kind:     config.BackendRemote,
		Missions: service.NewMissionService(client.Missions(), obs),
		Notes:    service.NewNoteService(client.Notes(), obs),
		Sessions: sessions,
		Profile:  service.NewProfileService(client, sessions),
		Auth:     client,
		Client:   client,
	}
}

// APIDeps exposes the backend to the HTTP API.
func (b *Backend) APIDeps() api.Deps {
	deps := api.Deps{
		Auth:     b.Auth,
		Missions: b.Missions,
		Sessions: b.Sessions,
		Notes:    b.Notes,
	}
	if b.DB != nil {
		deps.DB = b.DB
	}
	return deps
}

func (b *Backend) Close() error {
	if b.ownedDB && b.DB != nil {
		return b.DB.Close()
	}
	return nil
}
