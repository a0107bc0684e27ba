package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcoot/lateguess/internal/api/apierr"
	"github.com/mcoot/lateguess/internal/api/middleware"
	"github.com/mcoot/lateguess/internal/api/request"
	"github.com/mcoot/lateguess/internal/api/response"
	"github.com/mcoot/lateguess/internal/services/auth"
)

// AuthHandler opens and closes API sessions
type AuthHandler struct {
	authService *auth.Service
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, h.logger, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		writeError(w, r, h.logger, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		writeError(w, r, h.logger, apierr.NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), middleware.GetToken(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
