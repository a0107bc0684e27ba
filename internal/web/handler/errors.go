package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/web/middleware"
	"github.com/mcoot/lateguess/internal/web/templates/layout"
	"github.com/mcoot/lateguess/internal/web/templates/pages"
)

// renderer writes pages and error pages for every handler
type renderer struct {
	logger *slog.Logger
}

func (rn renderer) page(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		rn.logger.Error("render failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

func (rn renderer) ok(w http.ResponseWriter, r *http.Request, c templ.Component) {
	rn.page(w, r, http.StatusOK, c)
}

// status renders an error page with a message for the visitor
func (rn renderer) status(w http.ResponseWriter, r *http.Request, status int, message string) {
	rn.page(w, r, status, pages.Error(pages.ErrorData{
		PageData: pageData(r, http.StatusText(status)),
		Status:   status,
		Message:  message,
	}))
}

// fail maps a service error onto a response. Infrastructure failures are
// logged here and nowhere else.
func (rn renderer) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case model.IsNotFound(err):
		rn.status(w, r, http.StatusNotFound, "The requested page could not be found.")
	case errors.Is(err, model.ErrForbidden):
		rn.status(w, r, http.StatusForbidden, "You don't have permission to do that.")
	case errors.Is(err, model.ErrGameResolved):
		rn.status(w, r, http.StatusConflict, "This game has already been resolved.")
	default:
		rn.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		rn.status(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}

// validationMessage extracts the message to show above a form, if err is
// one the visitor can fix
func validationMessage(err error) (string, bool) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}

// pageData builds the shared page fields from the request context
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title: title,
		User:  middleware.GetUser(r.Context()),
		Flash: middleware.GetFlash(r.Context()),
	}
}

// NotFound renders the 404 page for unmatched routes
func NotFound(logger *slog.Logger) http.Handler {
	rn := renderer{logger: logger}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rn.status(w, r, http.StatusNotFound, "The requested page could not be found.")
	})
}
