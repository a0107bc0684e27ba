// Package signed implements stateless sessions as HMAC-signed JWTs. The
// token itself carries the user id, so nothing is stored server-side and
// Revoke relies on the client discarding its cookie.
package signed

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mcoot/lateguess/internal/dependencies/clock"
	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/sessions"
)

const issuer = "lateguess"

// Store signs and verifies session tokens with a shared secret
type Store struct {
	secret []byte
	clock  clock.Clock
	ttl    time.Duration
}

// Ensure Store implements the interface
var _ sessions.Store = (*Store)(nil)

// New creates a signed session store. The secret must not be empty.
func New(secret string, clk clock.Clock, ttl time.Duration) (*Store, error) {
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	return &Store{
		secret: []byte(secret),
		clock:  clk,
		ttl:    ttl,
	}, nil
}

func (s *Store) Create(_ context.Context, userID model.UserID) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(int64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        sessions.NewToken(""),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Store) Lookup(_ context.Context, token string) (model.UserID, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return 0, sessions.ErrInvalidSession
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, sessions.ErrInvalidSession
	}
	return model.UserID(id), nil
}

// Revoke is a no-op: signed tokens stay valid until they expire
func (s *Store) Revoke(context.Context, string) error {
	return nil
}
