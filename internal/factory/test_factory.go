package factory

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/lateguess/internal/config"
	"github.com/mcoot/lateguess/internal/dependencies/mocks"
	"github.com/mcoot/lateguess/internal/services/auth"
	"github.com/mcoot/lateguess/internal/sessions/memory"
	"github.com/mcoot/lateguess/internal/storage/sqlite"
	"github.com/mcoot/lateguess/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App backed by a fresh SQLite database in a temp
// directory, an in-memory session store and a mocked clock
func NewTestApp(t testing.TB) *TestApp {
	t.Helper()

	cfg := config.Default()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "lateguess.sqlite")
	cfg.SessionStore = config.SessionStoreMemory

	storeCfg := sqlite.DefaultConfig()
	storeCfg.Path = cfg.DatabasePath
	store, err := sqlite.New(storeCfg, testutil.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(t.Context()))

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	sessionStore := memory.New(mockClock, cfg.SessionTTL)

	app := newWithDependencies(store, sessionStore, mockClock, time.UTC,
		auth.Config{BcryptCost: bcrypt.MinCost}, testutil.NopLogger())
	app.Config = cfg

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
