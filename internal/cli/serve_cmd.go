package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vocuz/vocuz/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local database as the vocuz data API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.API == nil {
				return fmt.Errorf("serve needs the local backend (set VOCUZ_BACKEND=local)")
			}
			if addr == "" && app.Config != nil {
				addr = app.Config.ListenAddr
			}
			logger := app.logger()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if app.PruneTokens != nil {
				if n, err := app.PruneTokens(ctx); err != nil {
					logger.Warn("pruning expired tokens failed", "error", err)
				} else if n > 0 {
					logger.Info("pruned expired tokens", "count", n)
				}
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "vocuz api listening on http://%s\n", ln.Addr())
			return serveAPI(ctx, ln, api.NewRouter(*app.API, logger), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from VOCUZ_LISTEN_ADDR)")
	return cmd
}

// serveAPI serves h on ln until ctx is done, then shuts down gracefully.
func serveAPI(ctx context.Context, ln net.Listener, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
