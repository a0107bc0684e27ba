package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/lateguess/internal/api/middleware"
	"github.com/mcoot/lateguess/internal/api/response"
	"github.com/mcoot/lateguess/internal/services/leaderboard"
)

// LeaderboardHandler serves standings and the caller's own account
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
	logger             *slog.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// Pointsboard handles GET /api/pointsboard
func (h *LeaderboardHandler) Pointsboard(w http.ResponseWriter, r *http.Request) {
	standings, err := h.leaderboardService.Pointsboard(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.StandingsFromModel(standings))
}

// Me handles GET /api/me
func (h *LeaderboardHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
