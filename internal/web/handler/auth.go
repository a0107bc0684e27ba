package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/services/auth"
	"github.com/mcoot/lateguess/internal/web/middleware"
	"github.com/mcoot/lateguess/internal/web/templates/pages"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
	sessionTTL  time.Duration
	renderer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, sessionTTL time.Duration, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionTTL:  sessionTTL,
		renderer:    renderer{logger: logger},
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, pages.Register(pages.AuthData{PageData: pageData(r, "Register")}))
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form data", "")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	_, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			h.renderRegisterError(w, r, msg, username)
			return
		}
		if errors.Is(err, model.ErrUsernameTaken) {
			h.renderRegisterError(w, r,
				fmt.Sprintf("User %s is already registered.", auth.NormalizeUsername(username)), username)
			return
		}
		h.fail(w, r, err)
		return
	}

	middleware.SetFlash(w, "success", "Registration successful. Please log in.")
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, pages.Login(pages.AuthData{
		PageData: pageData(r, "Log In"),
		Next:     r.URL.Query().Get("next"),
	}))
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "", "")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	next := r.FormValue("next")
	if next == "" {
		next = r.URL.Query().Get("next")
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrIncorrectUsername):
			h.renderLoginError(w, r, "Incorrect username.", username, next)
		case errors.Is(err, model.ErrIncorrectPassword):
			h.renderLoginError(w, r, "Incorrect password.", username, next)
		default:
			h.fail(w, r, err)
		}
		return
	}

	// Drop any previous session before issuing the new one
	if old := middleware.SessionToken(r); old != "" {
		_ = h.authService.Logout(r.Context(), old)
	}
	h.setSessionCookie(w, session.Token)

	http.Redirect(w, r, localRedirect(next), http.StatusSeeOther)
}

// localRedirect returns next when it is a path on this site, and "/" otherwise.
// Browsers read a backslash as a slash, so "/\host" would leave the site.
func localRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "/"
	}
	return next
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		if err := h.authService.Logout(r.Context(), token); err != nil {
			h.logger.Warn("failed to revoke session", slog.String("error", err.Error()))
		}
	}

	// Clear session cookie
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username, next string) {
	data := pages.AuthData{PageData: pageData(r, "Log In"), Username: username, Next: next}
	data.Error = errorMsg
	h.ok(w, r, pages.Login(data))
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg, username string) {
	data := pages.AuthData{PageData: pageData(r, "Register"), Username: username}
	data.Error = errorMsg
	h.ok(w, r, pages.Register(data))
}
