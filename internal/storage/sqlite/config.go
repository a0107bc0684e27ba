package sqlite

import "time"

// Config holds SQLite connection settings
type Config struct {
	// Path is the database file path (e.g., instance/lateguess.sqlite)
	Path string

	// Pool settings
	MaxOpenConns int
	BusyTimeout  time.Duration
}

// DefaultConfig returns sensible defaults for SQLite configuration
func DefaultConfig() Config {
	return Config{
		Path:         "instance/lateguess.sqlite",
		MaxOpenConns: 4,
		BusyTimeout:  5 * time.Second,
	}
}
