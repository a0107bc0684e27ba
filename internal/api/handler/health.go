package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/lateguess/internal/api/apierr"
	"github.com/mcoot/lateguess/internal/api/response"
)

// Pinger is anything whose reachability the health check reports
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the server and its database are usable
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Warn("health check: database unreachable", slog.String("error", err.Error()))
			apierr.WriteError(w, apierr.NewUnavailableError("database unreachable"))
			return
		}
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Database: "ok"})
}
