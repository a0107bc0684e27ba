package game

import (
	"fmt"
	"time"

	"github.com/mcoot/lateguess/internal/model"
)

// PointsPerWin is awarded to the winner of each resolved game
const PointsPerWin = 1

// ParseGuess places an "HH:MM" guess on the calendar date of day, in loc
func ParseGuess(guessed string, day time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(model.GuessTimeLayout, guessed, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse guess %q: %w", guessed, err)
	}

	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// SelectWinner returns the guess closest to at, or nil if no guess could be
// placed. Guesses are compared on the date of at in loc. Ties go to the
// earliest guess in the slice. Guesses that fail to parse are ignored.
func SelectWinner(guesses []model.Guess, at time.Time, loc *time.Location) (*model.Guess, time.Duration) {
	var (
		winner *model.Guess
		best   time.Duration
	)

	for i := range guesses {
		instant, err := ParseGuess(guesses[i].GuessedTime, at, loc)
		if err != nil {
			continue
		}

		distance := absDuration(instant.Sub(at))
		if winner == nil || distance < best {
			winner = &guesses[i]
			best = distance
		}
	}

	return winner, best
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
