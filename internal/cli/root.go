package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vocuz/vocuz/internal/api"
	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/config"
	"github.com/vocuz/vocuz/internal/service"
	"github.com/vocuz/vocuz/internal/settings"
	"github.com/vocuz/vocuz/internal/timer"
)

// App holds references to all services and stores used by CLI commands.
type App struct {
	Missions service.MissionService
	Notes    service.NoteService
	Sessions service.SessionLogService
	Profile  service.ProfileService
	Auth     auth.Authenticator

	Credentials *auth.CredentialStore
	Settings    *settings.Holder
	Config      *config.Config
	Logger      *slog.Logger
	Signaler    timer.Signaler

	// API is what `serve` exposes. Nil when the backend is itself remote.
	API *api.Deps
	// PruneTokens drops expired bearer tokens before serving. Optional.
	PruneTokens func(ctx context.Context) (int64, error)
	// UseToken points the backend at a bearer token stored by another
	// command. Only the remote backend needs it; local services take the
	// user from the context.
	UseToken func(token string)

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Now is the clock used for credential expiry.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "vocuz" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "vocuz",
		Short:         "Pomodoro focus timer with missions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd, app, timerOptions{})
		},
	}

	root.AddCommand(
		newTimerCmd(app),
		newMissionCmd(app),
		newNoteCmd(app),
		newSessionCmd(app),
		newSettingsCmd(app),
		newThemeCmd(app),
		newSignUpCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoAmICmd(app),
		newProfileCmd(app),
		newServeCmd(app),
	)

	return root
}

// InvokedCommand names the subcommand args would run, or "" when they name
// none. Only command words count, so `vocuz note add serve` is "add".
func InvokedCommand(args []string) string {
	root := NewRootCmd(&App{})
	cmd, _, err := root.Find(args)
	if err != nil || cmd == root {
		return ""
	}
	return cmd.Name()
}

// ExplainError rewrites errors that have a better user-facing wording.
func ExplainError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated), errors.Is(err, auth.ErrInvalidToken):
		return fmt.Errorf("please sign in first: vocuz login (or vocuz signup)")
	}
	return err
}
