package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/sessions"
)

// Key prefix for all session data
const keyPrefix = "lateguess"

// sessionKey returns the Redis key for a session token
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// Store is a Redis-backed session store
type Store struct {
	client *redis.Client
	cfg    Config
}

// Ensure Store implements the interface
var _ sessions.Store = (*Store)(nil)

// New creates a new Redis session store and verifies the connection
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis session store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Create(ctx context.Context, userID model.UserID) (string, error) {
	token := sessions.NewToken("sess_")
	value := strconv.FormatInt(int64(userID), 10)

	if err := s.client.Set(ctx, sessionKey(token), value, s.cfg.SessionTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) Lookup(ctx context.Context, token string) (model.UserID, error) {
	value, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, sessions.ErrInvalidSession
		}
		return 0, err
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, sessions.ErrInvalidSession
	}
	return model.UserID(id), nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}
