package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/lateguess/internal/api/response"
	"github.com/mcoot/lateguess/internal/services/blog"
)

// PostHandler serves blog posts
type PostHandler struct {
	blogService *blog.Service
	logger      *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(blogService *blog.Service, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		blogService: blogService,
		logger:      logger,
	}
}

// List handles GET /api/posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogService.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PostsFromModel(posts))
}
