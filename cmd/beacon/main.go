// Package main is the entry point for the beacon server
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"beacon/internal/config"
	"beacon/internal/logging"
	"beacon/internal/server"
	"beacon/internal/telemetry"
	"beacon/internal/version"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (for development)
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found or error loading it: %v", err)
	}
	logging.ReloadLevel()

	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-version" || os.Args[1] == "version") {
		fmt.Print(version.Get().String())
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Any error means the process must exit non-zero.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	isDevelopment := os.Getenv("BEACON_ENV") == "development" || os.Getenv("DEBUG") == "true"
	if isDevelopment {
		logDir := "./logs"
		if err := logging.Initialize(logDir); err != nil {
			logging.Warning("Failed to initialize file logging: %v", err)
		} else {
			defer logging.Close() //nolint:errcheck // Best effort on exit
		}
	}

	versionInfo := version.Get()

	shutdownTelemetry, err := telemetry.InitializeFromEnv(ctx, versionInfo.Version)
	if err != nil {
		logging.Warning("Failed to initialize telemetry: %v", err)
	} else {
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				logging.Error("Error shutting down telemetry: %v", err)
			}
		}()
	}

	logging.Debug("Configuration: %s", cfg)

	srv, err := server.New(cfg, versionInfo)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Listen(); err != nil {
		return err
	}

	served := make(chan error, 1)
	go func() {
		served <- srv.Serve()
	}()

	select {
	case err := <-served:
		// Serve only returns early on a listener failure.
		return err
	case <-ctx.Done():
		logging.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-served
}
