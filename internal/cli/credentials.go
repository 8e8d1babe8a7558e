package cli

import (
	"context"

	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/config"
	"github.com/vocuz/vocuz/internal/service"
)

func (a *App) backendName() string {
	if a.Config == nil || a.Config.Backend == "" {
		return config.BackendLocal
	}
	return a.Config.Backend
}

// signedIn returns the stored credentials when they are unexpired and were
// issued by the configured backend, nil otherwise.
func (a *App) signedIn() (*auth.Credentials, error) {
	if a.Credentials == nil {
		return nil, nil
	}
	creds, err := a.Credentials.Load()
	if err != nil {
		return nil, err
	}
	if !creds.Valid(a.now()) || creds.Backend != a.backendName() {
		return nil, nil
	}
	return creds, nil
}

// userContext returns ctx acting on behalf of the signed-in user. Without
// credentials ctx is returned as is and the services answer
// ErrNotAuthenticated.
func (a *App) userContext(ctx context.Context) (context.Context, error) {
	creds, err := a.signedIn()
	if err != nil || creds == nil {
		return ctx, err
	}
	return service.WithUserID(ctx, creds.UserID), nil
}

func (a *App) remember(sess *auth.Session) error {
	if a.Credentials == nil {
		return nil
	}
	return a.Credentials.Save(&auth.Credentials{
		Token:     sess.Token,
		UserID:    sess.User.ID,
		Email:     sess.User.Email,
		Backend:   a.backendName(),
		ExpiresAt: sess.ExpiresAt,
	})
}

func (a *App) forget() error {
	if a.Credentials == nil {
		return nil
	}
	return a.Credentials.Clear()
}
