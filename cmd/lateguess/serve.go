package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/lateguess/internal/api"
	"github.com/mcoot/lateguess/internal/config"
	"github.com/mcoot/lateguess/internal/factory"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, newLogger(cfg))
		},
	}
}

// newLogger builds the process-wide JSON logger
func newLogger(cfg config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)
	return logger
}

// serve runs the HTTP server until ctx is cancelled
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if cfg.SecretKey == config.DevSecretKey {
		logger.Warn("using the development SECRET_KEY; set SECRET_KEY in production")
	}

	app, err := factory.New(ctx, cfg, factory.Options{Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("close failed", slog.String("error", err.Error()))
		}
	}()

	server := api.NewServer(app.Handler(), api.DefaultServerConfig(cfg.Host, cfg.Port), logger)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
