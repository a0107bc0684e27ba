package model

import "time"

// PostID uniquely identifies a blog post
type PostID int64

// Post is a blog entry written by a single author
type Post struct {
	ID             PostID
	Title          string
	Body           string
	Created        time.Time
	AuthorID       UserID
	AuthorUsername string
}

// IsAuthoredBy reports whether the post belongs to the given user
func (p *Post) IsAuthoredBy(user *User) bool {
	return user != nil && p.AuthorID == user.ID
}
