package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/services/blog"
	"github.com/mcoot/lateguess/internal/web/middleware"
	"github.com/mcoot/lateguess/internal/web/templates/pages"
)

// BlogHandler handles post pages and actions
type BlogHandler struct {
	blogService *blog.Service
	renderer
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blogService *blog.Service, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		renderer:    renderer{logger: logger},
	}
}

// Index lists every post
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blogService.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, pages.BlogIndex(pages.BlogIndexData{
		PageData: pageData(r, "Posts"),
		Posts:    posts,
	}))
}

// CreatePage renders the new post form
func (h *BlogHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, pages.PostForm(pages.PostFormData{PageData: pageData(r, "New Post")}))
}

// Create handles new post submission
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.status(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := r.FormValue("title")
	body := r.FormValue("body")

	_, err := h.blogService.Create(r.Context(), middleware.GetUser(r.Context()), title, body)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			data := pages.PostFormData{PageData: pageData(r, "New Post"), Title: title, Body: body}
			data.Error = msg
			h.ok(w, r, pages.PostForm(data))
			return
		}
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdatePage renders the edit form for a post the user owns
func (h *BlogHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadOwnPost(w, r)
	if !ok {
		return
	}

	h.ok(w, r, pages.PostForm(pages.PostFormData{
		PageData: pageData(r, "Edit Post"),
		Post:     post,
		Title:    post.Title,
		Body:     post.Body,
	}))
}

// Update handles edit form submission
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.status(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := r.FormValue("title")
	body := r.FormValue("body")

	post, err := h.blogService.Update(r.Context(), id, middleware.GetUser(r.Context()), title, body)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			data := pages.PostFormData{PageData: pageData(r, "Edit Post"), Post: post, Title: title, Body: body}
			data.Error = msg
			h.ok(w, r, pages.PostForm(data))
			return
		}
		h.postError(w, r, id, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete removes a post the user owns
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.postID(w, r)
	if !ok {
		return
	}

	if err := h.blogService.Delete(r.Context(), id, middleware.GetUser(r.Context())); err != nil {
		h.postError(w, r, id, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *BlogHandler) loadOwnPost(w http.ResponseWriter, r *http.Request) (*model.Post, bool) {
	id, ok := h.postID(w, r)
	if !ok {
		return nil, false
	}

	post, err := h.blogService.Get(r.Context(), id, middleware.GetUser(r.Context()), true)
	if err != nil {
		h.postError(w, r, id, err)
		return nil, false
	}
	return post, true
}

func (h *BlogHandler) postID(w http.ResponseWriter, r *http.Request) (model.PostID, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.status(w, r, http.StatusNotFound, "The requested page could not be found.")
		return 0, false
	}
	return model.PostID(id), true
}

func (h *BlogHandler) postError(w http.ResponseWriter, r *http.Request, id model.PostID, err error) {
	if errors.Is(err, model.ErrPostNotFound) {
		h.status(w, r, http.StatusNotFound, fmt.Sprintf("Post id %d doesn't exist.", id))
		return
	}
	h.fail(w, r, err)
}
