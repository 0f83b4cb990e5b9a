package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/phrazzld/simplelog/internal/api"
	"github.com/phrazzld/simplelog/internal/config"
	"github.com/phrazzld/simplelog/pkg/simplelog"
)

// application holds the running components of the daemon.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	backend *simplelog.Backend
	client  *simplelog.Logger
	server  *http.Server
}

// newApplication spawns the backend described by cfg and prepares, but does
// not start, the HTTP server.
func newApplication(cfg *config.Config, diag *slog.Logger) (*application, error) {
	threshold, err := simplelog.ParseLevel(cfg.Client.Threshold)
	if err != nil {
		return nil, fmt.Errorf("invalid client threshold: %w", err)
	}

	backend, err := backendConfig(cfg.Backend, diag).Spawn()
	if err != nil {
		return nil, fmt.Errorf("failed to start logging backend: %w", err)
	}

	handler := api.NewLogHandler(backend.Channel(), backend)
	server := &http.Server{
		Handler:           api.NewRouter(handler, diag.With("component", "api")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &application{
		config:  cfg,
		logger:  diag,
		backend: backend,
		client:  simplelog.NewLogger(cfg.Client.Name, threshold, backend.Channel()),
		server:  server,
	}, nil
}

// backendConfig translates daemon configuration into a backend builder.
func backendConfig(cfg config.BackendConfig, diag *slog.Logger) simplelog.Config {
	b := simplelog.NewBackend().
		WithWorkerName(cfg.WorkerName).
		WithRecvTimeout(cfg.RecvTimeout).
		WithDiagnostics(diag.With("component", "logging_backend"))
	if cfg.Stdout {
		b = b.WithStdout()
	}
	if cfg.Folder != "" {
		b = b.WithFolder(cfg.Folder)
	}
	return b
}

// serve runs the HTTP server on ln until ctx is cancelled or the server
// fails, then shuts everything down.
func (app *application) serve(ctx context.Context, ln net.Listener) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	app.logger.Info("server started", "addr", ln.Addr().String())
	if err := app.client.Infof("simplelogd listening on %s", ln.Addr()); err != nil {
		app.logger.Warn("failed to log startup message", "error", err)
	}

	var runErr error
	select {
	case <-ctx.Done():
		app.logger.Info("shutting down server")
	case err := <-serverErr:
		if err != nil {
			app.logger.Error("server failed", "error", err)
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	return errors.Join(runErr, app.shutdown())
}

// shutdown stops the HTTP server first so no new messages arrive, then
// drains the backend, both within the configured timeout.
func (app *application) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
	}

	if err := app.client.Info("simplelogd stopping"); err != nil {
		app.logger.Warn("failed to log shutdown message", "error", err)
	}

	if err := app.backend.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("logging backend shutdown failed: %w", err))
	}

	stats := app.backend.Stats()
	app.logger.Info("shutdown completed",
		"dispatched", stats.Dispatched,
		"failures", stats.Failures)

	return errors.Join(errs...)
}
