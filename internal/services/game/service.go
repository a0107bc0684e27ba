package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/lateguess/internal/dependencies/clock"
	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/storage"
)

const msgBlankField = "You can't leave the field blank!"

// Service manages guessing games, their guesses and resolution
type Service struct {
	storage  storage.Storage
	clock    clock.Clock
	location *time.Location
	logger   *slog.Logger
}

// New creates a new game Service. Guesses are interpreted as times of day
// in loc; a nil loc means UTC.
func New(storage storage.Storage, clock clock.Clock, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Service{
		storage:  storage,
		clock:    clock,
		location: loc,
		logger:   logger,
	}
}

// Location returns the timezone guesses are interpreted in
func (s *Service) Location() *time.Location {
	return s.location
}

// List returns every game, newest first
func (s *Service) List(ctx context.Context) ([]model.Game, error) {
	return s.storage.ListGames(ctx)
}

// Get returns a game together with its guesses in submission order
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.GameDetail, error) {
	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	guesses, err := s.storage.ListGuesses(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.GameDetail{Game: *game, Guesses: guesses}, nil
}

// Create starts a new game about latePerson
func (s *Service) Create(ctx context.Context, actor *model.User, latePerson, arrivalTime string) (*model.Game, error) {
	if actor == nil {
		return nil, model.ErrForbidden
	}
	if strings.TrimSpace(latePerson) == "" {
		return nil, model.Invalid(msgBlankField)
	}

	game := &model.Game{
		Created:     s.clock.Now(),
		LatePerson:  latePerson,
		ArrivalTime: arrivalTime,
	}
	if err := s.storage.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	s.logger.Info("game created",
		slog.Int64("game_id", int64(game.ID)),
		slog.Int64("creator_id", int64(actor.ID)),
	)
	return game, nil
}

// SubmitGuess records actor's guess for a game that is still open
func (s *Service) SubmitGuess(ctx context.Context, gameID model.GameID, actor *model.User, guessedTime string) (*model.Guess, error) {
	if actor == nil {
		return nil, model.ErrForbidden
	}

	guessedTime = strings.TrimSpace(guessedTime)
	if guessedTime == "" {
		return nil, model.Invalid(msgBlankField)
	}
	if _, err := time.Parse(model.GuessTimeLayout, guessedTime); err != nil {
		return nil, model.Invalid("Guess must be a time in HH:MM format.")
	}

	game, err := s.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsResolved() {
		return nil, model.ErrGameResolved
	}

	guess := &model.Guess{
		GameID:         gameID,
		PlayerID:       actor.ID,
		PlayerUsername: actor.Username,
		GuessedTime:    guessedTime,
		Created:        s.clock.Now(),
	}
	if err := s.storage.CreateGuess(ctx, guess); err != nil {
		return nil, err
	}

	s.logger.Debug("guess submitted",
		slog.Int64("game_id", int64(gameID)),
		slog.Int64("player_id", int64(actor.ID)),
		slog.String("guess", guessedTime),
	)
	return guess, nil
}

// ArrivalAt places an "HH:MM" arrival time on today's date in the game
// timezone. An empty string means now.
func (s *Service) ArrivalAt(arrivedAt string) (time.Time, error) {
	now := s.clock.Now()

	arrivedAt = strings.TrimSpace(arrivedAt)
	if arrivedAt == "" {
		return now, nil
	}

	at, err := ParseGuess(arrivedAt, now, s.location)
	if err != nil {
		return time.Time{}, model.Invalid("Arrival must be a time in HH:MM format.")
	}
	return at, nil
}

// ResolveWinner picks the guess nearest to at and awards its player
// PointsPerWin. A game with no guesses stays open and the returned
// resolution has no winner. Resolving a game that already has a winner
// returns the stored outcome together with model.ErrGameResolved.
func (s *Service) ResolveWinner(ctx context.Context, gameID model.GameID, at time.Time) (*model.Resolution, error) {
	decide := func(guesses []model.Guess) (*model.Guess, time.Duration) {
		for _, g := range guesses {
			if _, err := ParseGuess(g.GuessedTime, at, s.location); err != nil {
				s.logger.Warn("skipping unparseable guess",
					slog.Int64("game_id", int64(gameID)),
					slog.Int64("guess_id", int64(g.ID)),
					slog.String("error", err.Error()),
				)
			}
		}
		return SelectWinner(guesses, at, s.location)
	}

	res, err := s.storage.ResolveGame(ctx, gameID, at, PointsPerWin, decide)
	if err != nil {
		if errors.Is(err, model.ErrGameResolved) && res != nil {
			s.fillStoredWinner(ctx, res)
		}
		return res, err
	}

	if res.Winner == nil {
		s.logger.Info("game has no guesses to resolve", slog.Int64("game_id", int64(gameID)))
		return res, nil
	}

	s.logger.Info("game resolved",
		slog.Int64("game_id", int64(gameID)),
		slog.Int64("winner_id", int64(res.Winner.PlayerID)),
		slog.String("guess", res.Winner.GuessedTime),
		slog.Duration("distance", res.Distance),
	)
	return res, nil
}

// fillStoredWinner reconstructs the winning guess of an already resolved game
func (s *Service) fillStoredWinner(ctx context.Context, res *model.Resolution) {
	if res.Game.WinnerID == nil {
		return
	}
	if res.Game.ResolvedAt != nil {
		res.At = *res.Game.ResolvedAt
	}
	res.Points = PointsPerWin

	guesses, err := s.storage.ListGuesses(ctx, res.Game.ID)
	if err != nil {
		s.logger.Warn("failed to load guesses for resolved game",
			slog.Int64("game_id", int64(res.Game.ID)),
			slog.String("error", err.Error()),
		)
		return
	}

	winner, distance := SelectWinner(guesses, res.At, s.location)
	if winner != nil && winner.PlayerID == *res.Game.WinnerID {
		res.Winner = winner
		res.Distance = distance
	}
}
