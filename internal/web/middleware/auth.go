package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/services/auth"
)

type contextKey string

const (
	userContextKey contextKey = "user"

	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "session"

	// LoginPath is where unauthenticated visitors are sent
	LoginPath = "/auth/login"
)

// GetUser retrieves the logged-in user from the request context
// Returns nil if nobody is logged in
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// SessionToken returns the session token sent with the request, if any
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// CurrentUser loads the user behind the session cookie once per request.
// Requests without a valid session continue with no user.
func CurrentUser(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.CurrentUser(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

type gateKind int

const (
	gateAllow gateKind = iota
	gateRedirect
)

// gateResult is the outcome of checking a request against the login gate
type gateResult struct {
	kind     gateKind
	user     *model.User
	location string
}

func loginGate(r *http.Request) gateResult {
	if user := GetUser(r.Context()); user != nil {
		return gateResult{kind: gateAllow, user: user}
	}
	return gateResult{
		kind:     gateRedirect,
		location: LoginPath + "?next=" + url.QueryEscape(r.URL.Path),
	}
}

// RequireLogin redirects visitors without a session to the login page.
// Must run after CurrentUser.
func RequireLogin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch gate := loginGate(r); gate.kind {
			case gateAllow:
				next.ServeHTTP(w, r)
			case gateRedirect:
				http.Redirect(w, r, gate.location, http.StatusSeeOther)
			}
		})
	}
}

func withUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
