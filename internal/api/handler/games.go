package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/lateguess/internal/api/response"
	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/services/game"
)

// GameHandler serves guessing games
type GameHandler struct {
	gameService *game.Service
	logger      *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *game.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// List handles GET /api/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Get handles GET /api/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	detail, err := h.gameService.Get(r.Context(), model.GameID(id))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameDetailFromModel(detail))
}
