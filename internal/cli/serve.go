package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/reeflow/reeflow/internal/server"
)

// shutdownGrace is how long in-flight requests get to finish after the
// serve command is interrupted.
const shutdownGrace = 10 * time.Second

// newServeCmd creates the serve command for running the interactive
// diagram server. The server stays up until interrupted and shuts down
// gracefully, letting in-flight requests drain.
func newServeCmd(configPath *string) *cobra.Command {
	var (
		addr     string
		dataPath string
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the interactive diagram API over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				dataPath = args[0]
			}
			return runServe(cmd.Context(), *configPath, dataPath, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")

	return cmd
}

func runServe(ctx context.Context, configPath, dataPath, addr string) error {
	logger := loggerFromContext(ctx)

	a, err := newApp(ctx, configPath, dataPath, logger)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(a.session, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", addr, "years", len(a.session.Years()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
