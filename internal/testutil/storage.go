package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcoot/lateguess/internal/storage/sqlite"
)

// NewStorage opens a migrated SQLite database in a per-test temp directory.
// The database is closed when the test finishes.
func NewStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	cfg := sqlite.DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "lateguess.sqlite")

	store, err := sqlite.New(cfg, NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(t.Context()))
	return store
}
