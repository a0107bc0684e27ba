package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/lateguess/internal/middleware"
)

// Logging creates logging middleware for the web interface
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// RequestID tags each request with an id for the access log
func RequestID() func(http.Handler) http.Handler {
	return middleware.RequestID()
}
