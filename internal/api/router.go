package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/lateguess/internal/api/apierr"
	"github.com/mcoot/lateguess/internal/api/handler"
	"github.com/mcoot/lateguess/internal/api/middleware"
	"github.com/mcoot/lateguess/internal/services/auth"
	"github.com/mcoot/lateguess/internal/services/blog"
	"github.com/mcoot/lateguess/internal/services/game"
	"github.com/mcoot/lateguess/internal/services/leaderboard"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	DB                 handler.Pinger
	AuthService        *auth.Service
	BlogService        *blog.Service
	GameService        *game.Service
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Logger)
	postHandler := handler.NewPostHandler(cfg.BlogService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameService, cfg.Logger)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = http.HandlerFunc(notFound)
	api.Use(middleware.RequestID())
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)
	api.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/posts", postHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/pointsboard", leaderboardHandler.Pointsboard).Methods(http.MethodGet)

	// Routes that need a session
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.AuthService))
	protected.HandleFunc("/me", leaderboardHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	apierr.WriteError(w, apierr.NewNotFoundError("no such endpoint"))
}
