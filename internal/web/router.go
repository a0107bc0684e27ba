package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/lateguess/internal/services/auth"
	"github.com/mcoot/lateguess/internal/services/blog"
	"github.com/mcoot/lateguess/internal/services/game"
	"github.com/mcoot/lateguess/internal/services/leaderboard"
	"github.com/mcoot/lateguess/internal/web/handler"
	"github.com/mcoot/lateguess/internal/web/middleware"
	"github.com/mcoot/lateguess/internal/web/static"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	BlogService        *blog.Service
	GameService        *game.Service
	LeaderboardService *leaderboard.Service
	SessionTTL         time.Duration
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = handler.NotFound(cfg.Logger)

	// Create middleware
	requestIDMiddleware := middleware.RequestID()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	currentUserMiddleware := middleware.CurrentUser(cfg.AuthService)
	requireLogin := middleware.RequireLogin()

	// Apply global middleware to all routes
	r.Use(requestIDMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.SessionTTL, cfg.Logger)
	blogHandler := handler.NewBlogHandler(cfg.BlogService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameService, cfg.Logger)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService, cfg.Logger)

	// Static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServerFS(static.FS)))

	r.HandleFunc("/hello", handler.Hello).Methods(http.MethodGet)

	// Public routes (optional user for showing account info in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(currentUserMiddleware)
	public.HandleFunc("/", blogHandler.Index).Methods(http.MethodGet)
	public.HandleFunc("/games", gameHandler.Index).Methods(http.MethodGet)
	public.HandleFunc("/games/", gameHandler.Index).Methods(http.MethodGet)
	public.HandleFunc("/games/{id:[0-9]+}/game", gameHandler.View).Methods(http.MethodGet, http.MethodPost)
	public.HandleFunc("/pointsboard", leaderboardHandler.Pointsboard).Methods(http.MethodGet)

	// Auth actions (no login required)
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.Use(currentUserMiddleware)
	authRoutes.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	authRoutes.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)

	// Protected routes (require login)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(currentUserMiddleware)
	protected.Use(requireLogin)

	// Blog routes
	protected.HandleFunc("/create", blogHandler.CreatePage).Methods(http.MethodGet)
	protected.HandleFunc("/create", blogHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/{id:[0-9]+}/update", blogHandler.UpdatePage).Methods(http.MethodGet)
	protected.HandleFunc("/{id:[0-9]+}/update", blogHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/{id:[0-9]+}/delete", blogHandler.Delete).Methods(http.MethodPost)

	// Game routes
	protected.HandleFunc("/games/create", gameHandler.CreatePage).Methods(http.MethodGet)
	protected.HandleFunc("/games/create", gameHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id:[0-9]+}/guess", gameHandler.GuessPage).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id:[0-9]+}/guess", gameHandler.Guess).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id:[0-9]+}/win", gameHandler.WinPage).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id:[0-9]+}/win", gameHandler.Win).Methods(http.MethodPost)

	return r
}
