package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/sessions"
	"github.com/mcoot/lateguess/internal/storage"
)

// Session represents an authenticated session
type Session struct {
	Token string
	User  model.User
}

// Service handles registration, login and session resolution
type Service struct {
	storage  storage.Storage
	sessions sessions.Store
	cost     int
	logger   *slog.Logger
}

// Config holds configuration for the auth service
type Config struct {
	// BcryptCost is the bcrypt work factor used for new password hashes
	BcryptCost int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		BcryptCost: bcrypt.DefaultCost,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, sessionStore sessions.Store, cfg Config, logger *slog.Logger) *Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultConfig().BcryptCost
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		storage:  storage,
		sessions: sessionStore,
		cost:     cfg.BcryptCost,
		logger:   logger,
	}
}

// NormalizeUsername folds a username to its stored form
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register creates a new account. It does not log the user in.
func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = NormalizeUsername(username)

	if username == "" {
		return nil, model.Invalid("Username is required.")
	}
	if password == "" {
		return nil, model.Invalid("Password is required.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.storage.CreateUser(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return nil, fmt.Errorf("user %s: %w", username, err)
		}
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", int64(user.ID)),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login checks credentials and opens a new session
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	username = NormalizeUsername(username)

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrIncorrectUsername
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrIncorrectPassword
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{Token: token, User: *user}, nil
}

// CurrentUser resolves a session token to its user. It returns
// sessions.ErrInvalidSession when the token is unknown, expired, or
// belongs to a user that no longer exists.
func (s *Service) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, sessions.ErrInvalidSession
	}

	userID, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if !errors.Is(err, sessions.ErrInvalidSession) {
			s.logger.Warn("session lookup failed", slog.String("error", err.Error()))
		}
		return nil, sessions.ErrInvalidSession
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, sessions.ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the session token
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}
