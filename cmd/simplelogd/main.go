// Package main implements simplelogd, a daemon that runs one logging backend
// and accepts messages over HTTP from processes that cannot link the library.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/simplelog/internal/config"
	"github.com/phrazzld/simplelog/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "simplelogd: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, starts the backend and the HTTP server, and
// blocks until SIGINT or SIGTERM.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	diag, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	diag.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"worker_name", cfg.Backend.WorkerName,
		"stdout", cfg.Backend.Stdout,
		"folder", cfg.Backend.Folder)

	app, err := newApplication(cfg, diag)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		if shutdownErr := app.shutdown(); shutdownErr != nil {
			slog.Error("shutdown after listen failure", "error", shutdownErr)
		}
		return fmt.Errorf("failed to listen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.serve(ctx, ln)
}
