package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/vocuz/vocuz/internal/app"
	"github.com/vocuz/vocuz/internal/auth"
	"github.com/vocuz/vocuz/internal/cli"
	"github.com/vocuz/vocuz/internal/cli/formatter"
	"github.com/vocuz/vocuz/internal/config"
	"github.com/vocuz/vocuz/internal/logging"
	"github.com/vocuz/vocuz/internal/settings"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.ExplainError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog.Close()

	creds := auth.NewCredentialStore(cfg.CredentialsPath())
	stored, err := creds.Load()
	if err != nil {
		// A corrupt credentials file only means nobody is signed in.
		logger.Warn("ignoring stored credentials", "error", err)
		stored = nil
	}
	var token string
	if stored != nil && stored.Backend == cfg.Backend {
		token = stored.Token
	}

	prefs, err := settings.NewHolder(settings.NewFileStore(cfg.PreferencesPath()))
	if err != nil {
		return err
	}
	formatter.ApplyTheme(prefs.Get().Theme)

	backend, err := app.Open(cfg, token, logger)
	if err != nil {
		return fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}
	defer backend.Close()

	a := &cli.App{
		Missions:    backend.Missions,
		Notes:       backend.Notes,
		Sessions:    backend.Sessions,
		Profile:     backend.Profile,
		Auth:        backend.Auth,
		Credentials: creds,
		Settings:    prefs,
		Config:      cfg,
		Logger:      logger,
		Signaler:    cli.NewBellSignaler(os.Stdout),
	}
	switch backend.Kind {
	case config.BackendLocal:
		deps := backend.APIDeps()
		a.API = &deps
		a.PruneTokens = backend.Pruner.PruneExpired
	case config.BackendRemote:
		a.UseToken = backend.Client.SetToken
	}

	// Detect interactive terminal for forms and the timer view.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).Execute()
}

// openLogger logs to stderr for the API server and to the log file
// otherwise, so the timer view is never torn by log lines.
func openLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cli.InvokedCommand(os.Args[1:]) == "serve" {
		return logging.New(os.Stderr, cfg.SlogLevel()), io.NopCloser(nil), nil
	}
	return logging.OpenFile(cfg.LogFile, cfg.SlogLevel())
}
