package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mcoot/lateguess/internal/dependencies/clock"
	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/sessions"
)

type entry struct {
	userID    model.UserID
	expiresAt time.Time
}

// Store keeps sessions in process memory
type Store struct {
	clock clock.Clock
	ttl   time.Duration

	mu       sync.RWMutex
	sessions map[string]entry
}

// Ensure Store implements the interface
var _ sessions.Store = (*Store)(nil)

// New creates a new in-memory session store
func New(clk clock.Clock, ttl time.Duration) *Store {
	return &Store{
		clock:    clk,
		ttl:      ttl,
		sessions: make(map[string]entry),
	}
}

func (s *Store) Create(_ context.Context, userID model.UserID) (string, error) {
	token := sessions.NewToken("sess_")

	now := s.clock.Now()
	s.mu.Lock()
	s.removeExpired(now)
	s.sessions[token] = entry{userID: userID, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	return token, nil
}

func (s *Store) Lookup(_ context.Context, token string) (model.UserID, error) {
	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return 0, sessions.ErrInvalidSession
	}

	if s.clock.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return 0, sessions.ErrInvalidSession
	}

	return e.userID, nil
}

func (s *Store) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// removeExpired drops sessions that expired before now. Callers hold mu.
func (s *Store) removeExpired(now time.Time) {
	for token, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, token)
		}
	}
}

// Len returns the number of stored sessions, expired or not
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
