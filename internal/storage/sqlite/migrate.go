package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

func (s *Storage) provider() (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
}

// Migrate applies any pending schema migrations
func (s *Storage) Migrate(ctx context.Context) error {
	p, err := s.provider()
	if err != nil {
		return fmt.Errorf("migration setup failed: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	for _, r := range results {
		s.logger.Info("applied migration",
			slog.String("source", r.Source.Path),
			slog.Duration("duration", r.Duration),
		)
	}
	return nil
}

// Reset drops every table and recreates the schema from scratch
func (s *Storage) Reset(ctx context.Context) error {
	p, err := s.provider()
	if err != nil {
		return fmt.Errorf("migration setup failed: %w", err)
	}

	// Down needs the version table, which only Up creates
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("preparing schema failed: %w", err)
	}
	if _, err := p.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("dropping schema failed: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("creating schema failed: %w", err)
	}
	return nil
}

// SchemaVersion returns the highest applied migration version
func (s *Storage) SchemaVersion(ctx context.Context) (int64, error) {
	p, err := s.provider()
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}
