package response

import (
	"time"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/services/auth"
)

// User represents an account in API responses
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// UserFromModel converts a model.User, dropping the password hash
func UserFromModel(u *model.User) User {
	return User{
		ID:       int64(u.ID),
		Username: u.Username,
		Points:   u.Points,
	}
}

// AuthResponse carries a new session token and its user
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthResponseFromSession converts an auth.Session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Token: s.Token,
		User:  UserFromModel(&s.User),
	}
}

// Post represents a blog post
type Post struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Created  time.Time `json:"created"`
	AuthorID int64     `json:"author_id"`
	Author   string    `json:"author"`
}

// PostFromModel converts a model.Post
func PostFromModel(p *model.Post) Post {
	return Post{
		ID:       int64(p.ID),
		Title:    p.Title,
		Body:     p.Body,
		Created:  p.Created,
		AuthorID: int64(p.AuthorID),
		Author:   p.AuthorUsername,
	}
}

// PostsFromModel converts a list of posts
func PostsFromModel(posts []model.Post) []Post {
	out := make([]Post, len(posts))
	for i := range posts {
		out[i] = PostFromModel(&posts[i])
	}
	return out
}

// Game represents a guessing game
type Game struct {
	ID          int64      `json:"id"`
	Created     time.Time  `json:"created"`
	LatePerson  string     `json:"late_person"`
	ArrivalTime string     `json:"arrival_time"`
	Status      string     `json:"status"`
	WinnerID    *int64     `json:"winner_id,omitempty"`
	Winner      string     `json:"winner,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	resp := Game{
		ID:          int64(g.ID),
		Created:     g.Created,
		LatePerson:  g.LatePerson,
		ArrivalTime: g.ArrivalTime,
		Status:      string(g.Status()),
		Winner:      g.WinnerUsername,
		ResolvedAt:  g.ResolvedAt,
	}
	if g.WinnerID != nil {
		id := int64(*g.WinnerID)
		resp.WinnerID = &id
	}
	return resp
}

// GamesFromModel converts a list of games
func GamesFromModel(games []model.Game) []Game {
	out := make([]Game, len(games))
	for i := range games {
		out[i] = GameFromModel(&games[i])
	}
	return out
}

// Guess represents one player's guess
type Guess struct {
	ID          int64     `json:"id"`
	PlayerID    int64     `json:"player_id"`
	Player      string    `json:"player"`
	GuessedTime string    `json:"guessed_time"`
	Created     time.Time `json:"created"`
}

// GuessFromModel converts a model.Guess
func GuessFromModel(g *model.Guess) Guess {
	return Guess{
		ID:          int64(g.ID),
		PlayerID:    int64(g.PlayerID),
		Player:      g.PlayerUsername,
		GuessedTime: g.GuessedTime,
		Created:     g.Created,
	}
}

// GameDetail is a game with all of its guesses
type GameDetail struct {
	Game
	Guesses []Guess `json:"guesses"`
}

// GameDetailFromModel converts a model.GameDetail
func GameDetailFromModel(d *model.GameDetail) GameDetail {
	guesses := make([]Guess, len(d.Guesses))
	for i := range d.Guesses {
		guesses[i] = GuessFromModel(&d.Guesses[i])
	}
	return GameDetail{
		Game:    GameFromModel(&d.Game),
		Guesses: guesses,
	}
}

// Standing is one leaderboard row
type Standing struct {
	Rank     int    `json:"rank"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}

// StandingsFromModel converts the leaderboard
func StandingsFromModel(standings []model.Standing) []Standing {
	out := make([]Standing, len(standings))
	for i, s := range standings {
		out[i] = Standing{
			Rank:     s.Rank,
			UserID:   int64(s.UserID),
			Username: s.Username,
			Points:   s.Points,
		}
	}
	return out
}

// Health is the health check response
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
