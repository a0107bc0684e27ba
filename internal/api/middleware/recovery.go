package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/lateguess/internal/api/apierr"
	"github.com/mcoot/lateguess/internal/middleware"
)

// Recovery creates panic recovery middleware that answers with a JSON 500
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

// Logging records one access log line per API request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// RequestID tags each API request with an id
func RequestID() func(http.Handler) http.Handler {
	return middleware.RequestID()
}
