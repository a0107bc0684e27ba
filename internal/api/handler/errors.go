package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/lateguess/internal/api/apierr"
	"github.com/mcoot/lateguess/internal/middleware"
)

// writeError logs unexpected failures once, then writes the JSON error
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		logger.LogAttrs(r.Context(), slog.LevelError, "api request failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	apierr.WriteError(w, err)
}

// pathID parses a positive integer route variable
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, apierr.NewInvalidRequestError(name + " must be a positive integer")
	}
	return id, nil
}
