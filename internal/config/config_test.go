package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"SECRET_KEY", "DATABASE_PATH", "HOST", "PORT", "SESSION_STORE", "SESSION_TTL",
	"REDIS_URL", "GAME_TIMEZONE", "LOG_LEVEL", "DB_MAX_OPEN_CONNS", "INSTANCE_CONFIG",
}

// isolate runs the test in an empty directory with no config env vars set
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadInstanceFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "instance"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "instance", "config.toml"), []byte(`
secret_key = "from-file"
port = 9000
session_ttl = "2h"
game_timezone = "Europe/Berlin"
`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.SecretKey)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "Europe/Berlin", cfg.GameTimezone)
	assert.Equal(t, Default().DatabasePath, cfg.DatabasePath)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`secret_key = "from-file"`), 0o644))
	t.Setenv("INSTANCE_CONFIG", path)
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("DB_MAX_OPEN_CONNS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SecretKey)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2, cfg.DBMaxOpenConns)
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("DATABASE_PATH=from-dotenv.sqlite\nLOG_LEVEL=debug\n"), 0o644))
	t.Setenv("LOG_LEVEL", "warn")
	// godotenv skips keys that are present, even when empty
	require.NoError(t, os.Unsetenv("DATABASE_PATH"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.sqlite", cfg.DatabasePath)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port", "PORT", "eighty"},
		{"ttl", "SESSION_TTL", "forever"},
		{"store", "SESSION_STORE", "disk"},
		{"timezone", "GAME_TIMEZONE", "Mars/Olympus"},
		{"log level", "LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestValidateRedisNeedsURL(t *testing.T) {
	cfg := Default()
	cfg.SessionStore = SessionStoreRedis
	cfg.RedisURL = ""

	assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")
}

func TestLocation(t *testing.T) {
	cfg := Default()
	cfg.GameTimezone = "Europe/Stockholm"

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Stockholm", loc.String())
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
