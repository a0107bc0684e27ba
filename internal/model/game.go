package model

import "time"

// GameID uniquely identifies a guessing game
type GameID int64

// GuessID uniquely identifies a submitted guess
type GuessID int64

// GameStatus is derived from whether a winner has been recorded
type GameStatus string

const (
	GameStatusOpen     GameStatus = "open"
	GameStatusResolved GameStatus = "resolved"
)

// GuessTimeLayout is the layout of a guessed time of day
const GuessTimeLayout = "15:04"

// Game is a single "when will they arrive" round
type Game struct {
	ID             GameID
	Created        time.Time
	LatePerson     string
	ArrivalTime    string // opaque, as entered by the creator
	WinnerID       *UserID
	WinnerUsername string
	ResolvedAt     *time.Time
}

// Status returns the game's lifecycle state
func (g *Game) Status() GameStatus {
	if g.WinnerID != nil {
		return GameStatusResolved
	}
	return GameStatusOpen
}

// IsResolved reports whether a winner has been recorded
func (g *Game) IsResolved() bool {
	return g.Status() == GameStatusResolved
}

// Guess is one player's prediction for a game
type Guess struct {
	ID             GuessID
	GameID         GameID
	PlayerID       UserID
	PlayerUsername string
	GuessedTime    string // "HH:MM"
	Created        time.Time
}

// GameDetail is a game together with every guess submitted for it
type GameDetail struct {
	Game    Game
	Guesses []Guess
}

// Resolution is the outcome of computing a game's winner
type Resolution struct {
	Game     Game
	Winner   *Guess // nil when the game had no guesses
	Distance time.Duration
	Points   int
	At       time.Time
}
