package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/phrazzld/vizgen/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := loadApplication(ctx)
			if err != nil {
				return err
			}
			return app.serve(ctx, nil)
		},
	}
}

// router builds the HTTP handler for the application.
func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Visualizations: api.NewVisualizationHandler(app.orchestrator, app.logger),
		Status:         api.NewStatusHandler(app.model, app.lister, app.config.Server.Environment, app.logger),
		CORSOrigins:    app.config.Server.CORSOrigins,
		Logger:         app.logger,
	})
}

// serve runs the HTTP server and the job sweep until ctx is done, then shuts
// both down. A nil listener listens on the configured port.
func (app *application) serve(ctx context.Context, listener net.Listener) error {
	if listener == nil {
		var err error
		addr := net.JoinHostPort("", strconv.Itoa(app.config.Server.Port))
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
	}

	server := &http.Server{
		Handler:           app.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	app.orchestrator.Start()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("starting server", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		app.cleanup()
		if err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}
