package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/lateguess/internal/config"
	"github.com/mcoot/lateguess/internal/factory"
)

func newInitDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Clear the existing data and create new tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			app, err := factory.New(cmd.Context(), cfg, factory.Options{
				Logger:         logger,
				SkipMigrations: true,
			})
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = app.Close() }()

			if err := app.Storage.Reset(cmd.Context()); err != nil {
				return err
			}

			logger.Info("database initialised", slog.String("database", cfg.DatabasePath))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Initialized the database.")
			return nil
		},
	}
}
