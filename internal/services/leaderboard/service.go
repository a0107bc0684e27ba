package leaderboard

import (
	"context"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/storage"
)

// Service provides the ranked points table
type Service struct {
	storage storage.Storage
}

// New creates a new leaderboard Service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Pointsboard returns every user ranked by points. Users with equal points
// share a rank, and the next rank skips accordingly.
func (s *Service) Pointsboard(ctx context.Context) ([]model.Standing, error) {
	users, err := s.storage.ListUsersByPoints(ctx)
	if err != nil {
		return nil, err
	}
	return Rank(users), nil
}

// Rank assigns 1-based ranks to users already sorted by points descending
func Rank(users []model.User) []model.Standing {
	standings := make([]model.Standing, len(users))
	for i, u := range users {
		rank := i + 1
		if i > 0 && u.Points == users[i-1].Points {
			rank = standings[i-1].Rank
		}
		standings[i] = model.Standing{
			Rank:     rank,
			UserID:   u.ID,
			Username: u.Username,
			Points:   u.Points,
		}
	}
	return standings
}
