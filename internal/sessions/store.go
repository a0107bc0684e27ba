// Package sessions maps opaque session tokens to user ids.
package sessions

import (
	"context"
	"errors"

	"github.com/mcoot/lateguess/internal/model"
)

// ErrInvalidSession is returned for unknown, expired or tampered tokens
var ErrInvalidSession = errors.New("invalid or expired session")

// Store issues and resolves session tokens
type Store interface {
	// Create issues a new token bound to userID
	Create(ctx context.Context, userID model.UserID) (string, error)
	// Lookup returns the user bound to token, or ErrInvalidSession
	Lookup(ctx context.Context, token string) (model.UserID, error)
	// Revoke invalidates token. Unknown tokens are not an error.
	Revoke(ctx context.Context, token string) error
}
