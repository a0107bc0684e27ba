package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/lateguess/internal/services/leaderboard"
	"github.com/mcoot/lateguess/internal/web/templates/pages"
)

// LeaderboardHandler renders the pointsboard
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
	renderer
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		renderer:           renderer{logger: logger},
	}
}

// Pointsboard lists users by points
func (h *LeaderboardHandler) Pointsboard(w http.ResponseWriter, r *http.Request) {
	standings, err := h.leaderboardService.Pointsboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, pages.Pointsboard(pages.PointsboardData{
		PageData:  pageData(r, "Pointsboard"),
		Standings: standings,
	}))
}

// Hello is a plain text liveness page
func Hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello, World!"))
}
