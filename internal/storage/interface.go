package storage

import (
	"context"
	"time"

	"github.com/mcoot/lateguess/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsersByPoints(ctx context.Context) ([]model.User, error)

	// Post operations
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id model.PostID) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, id model.PostID, title, body string) error
	DeletePost(ctx context.Context, id model.PostID) error

	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]model.Game, error)

	// Guess operations
	CreateGuess(ctx context.Context, guess *model.Guess) error
	ListGuesses(ctx context.Context, gameID model.GameID) ([]model.Guess, error)

	// ResolveGame runs decide against the game's current guesses inside a
	// single transaction. When decide returns a winner, the game's winner
	// is recorded and the winner's points are incremented by points.
	// Returns model.ErrGameResolved if the game already has a winner.
	ResolveGame(ctx context.Context, id model.GameID, resolvedAt time.Time, points int, decide Decider) (*model.Resolution, error)
}

// Decider picks a winning guess from a game's guesses, or nil for no winner
type Decider func(guesses []model.Guess) (winner *model.Guess, distance time.Duration)
