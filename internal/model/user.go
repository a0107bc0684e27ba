package model

// UserID uniquely identifies a registered user
type UserID int64

// User is a registered account
type User struct {
	ID           UserID
	Username     string // always lower-cased
	PasswordHash string // bcrypt hash, never rendered
	Points       int
}

// Standing is one row of the points leaderboard
type Standing struct {
	Rank     int
	UserID   UserID
	Username string
	Points   int
}
