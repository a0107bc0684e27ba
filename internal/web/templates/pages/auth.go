package pages

import (
	"github.com/a-h/templ"

	"github.com/mcoot/lateguess/internal/web/templates/layout"
)

// AuthData is used by the register and login pages
type AuthData struct {
	layout.PageData
	Username string
	Next     string
}

// Register renders the registration form
func Register(data AuthData) templ.Component {
	return page(data.PageData, "Register", nil, func(h *htmlWriter) {
		h.raw(`<form method="post" action="/auth/register">
  <label for="username">Username</label>
  <input name="username" id="username" value="`)
		h.text(data.Username)
		h.raw(`" required>
  <label for="password">Password</label>
  <input type="password" name="password" id="password" required>
  <input type="submit" value="Register">
</form>
`)
	})
}

// Login renders the login form. Next, when set, is posted back so the
// user lands where they started.
func Login(data AuthData) templ.Component {
	return page(data.PageData, "Log In", nil, func(h *htmlWriter) {
		h.raw("<form method=\"post\" action=\"/auth/login\">\n")
		if data.Next != "" {
			h.raw(`  <input type="hidden" name="next" value="`)
			h.text(data.Next)
			h.raw("\">\n")
		}
		h.raw(`  <label for="username">Username</label>
  <input name="username" id="username" value="`)
		h.text(data.Username)
		h.raw(`" required>
  <label for="password">Password</label>
  <input type="password" name="password" id="password" required>
  <input type="submit" value="Log In">
</form>
`)
	})
}
