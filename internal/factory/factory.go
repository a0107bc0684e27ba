package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/lateguess/internal/config"
	"github.com/mcoot/lateguess/internal/dependencies/clock"
	"github.com/mcoot/lateguess/internal/services/auth"
	"github.com/mcoot/lateguess/internal/services/blog"
	"github.com/mcoot/lateguess/internal/services/game"
	"github.com/mcoot/lateguess/internal/services/leaderboard"
	"github.com/mcoot/lateguess/internal/sessions"
	"github.com/mcoot/lateguess/internal/sessions/memory"
	redisstore "github.com/mcoot/lateguess/internal/sessions/redis"
	"github.com/mcoot/lateguess/internal/sessions/signed"
	"github.com/mcoot/lateguess/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	Config config.Config
	Logger *slog.Logger

	// Storage
	Storage  *sqlite.Storage
	Sessions sessions.Store

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService        *auth.Service
	BlogService        *blog.Service
	GameService        *game.Service
	LeaderboardService *leaderboard.Service

	closers []io.Closer
}

// Options holds optional settings for the application factory
type Options struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// SkipMigrations leaves the schema untouched, for commands that manage
	// it themselves
	SkipMigrations bool
}

// New opens storage, applies pending migrations and wires all services
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	storeCfg := sqlite.DefaultConfig()
	storeCfg.Path = cfg.DatabasePath
	if cfg.DBMaxOpenConns > 0 {
		storeCfg.MaxOpenConns = cfg.DBMaxOpenConns
	}

	store, err := sqlite.New(storeCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	clk := clock.New()

	sessionStore, closer, err := newSessionStore(cfg, clk)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("create session store: %w", err)
	}

	app := newWithDependencies(store, sessionStore, clk, loc, opts.AuthConfig, logger)
	app.Config = cfg
	app.closers = append(app.closers, store)
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	logger.Info("application initialised",
		slog.String("database", cfg.DatabasePath),
		slog.String("session_store", cfg.SessionStore),
		slog.String("game_timezone", loc.String()),
	)
	return app, nil
}

func newSessionStore(cfg config.Config, clk clock.Clock) (sessions.Store, io.Closer, error) {
	switch cfg.SessionStore {
	case config.SessionStoreCookie, "":
		store, err := signed.New(cfg.SecretKey, clk, cfg.SessionTTL)
		return store, nil, err
	case config.SessionStoreMemory:
		return memory.New(clk, cfg.SessionTTL), nil, nil
	case config.SessionStoreRedis:
		redisCfg := redisstore.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.SessionTTL = cfg.SessionTTL
		store, err := redisstore.New(redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("invalid session store %q: must be cookie, memory or redis", cfg.SessionStore)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store *sqlite.Storage,
	sessionStore sessions.Store,
	clk clock.Clock,
	loc *time.Location,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	if authCfg.BcryptCost == 0 {
		authCfg = auth.DefaultConfig()
	}

	return &App{
		Logger:             logger,
		Storage:            store,
		Sessions:           sessionStore,
		Clock:              clk,
		AuthService:        auth.New(store, sessionStore, authCfg, logger),
		BlogService:        blog.New(store, clk, logger),
		GameService:        game.New(store, clk, loc, logger),
		LeaderboardService: leaderboard.New(store),
	}
}

// Close releases storage and session resources
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
