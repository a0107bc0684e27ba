// Package pages renders the HTML pages of the site as templ components.
package pages

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/web/templates/layout"
)

// htmlWriter keeps the first write error so page bodies can be written
// without checking each call
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s escaped for element content or a quoted attribute value
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) int(v int64) {
	h.raw(itoa(v))
}

// section writes one part of a page inside the shared frame
type section func(h *htmlWriter)

// page wraps content in the navigation frame every page shares. With a nil
// header the title is used as the heading.
func page(data layout.PageData, title string, header, content section) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw("<!doctype html>\n<html lang=\"en\">\n<head>\n  <meta charset=\"utf-8\">\n  <title>")
		h.text(title)
		h.raw(` - Flaskr</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <nav>
    <h1><a href="/">Flaskr</a></h1>
    <ul class="sections">
      <li><a href="/">Posts</a></li>
      <li><a href="/games/">Games</a></li>
      <li><a href="/pointsboard">Pointsboard</a></li>
    </ul>
    <ul class="account">
`)
		if data.LoggedIn() {
			h.raw(`      <li><span class="username">`)
			h.text(data.User.Username)
			h.raw("</span></li>\n      <li><a href=\"/auth/logout\">Log Out</a></li>\n")
		} else {
			h.raw("      <li><a href=\"/auth/register\">Register</a></li>\n      <li><a href=\"/auth/login\">Log In</a></li>\n")
		}
		h.raw("    </ul>\n  </nav>\n  <section class=\"content\">\n    <header>\n")

		if header != nil {
			header(h)
		} else {
			h.raw("<h1>")
			h.text(title)
			h.raw("</h1>\n")
		}
		h.raw("    </header>\n")

		if f := data.Flash; f != nil {
			h.raw(`    <div class="flash flash-`)
			h.text(f.Type)
			h.raw(`">`)
			h.text(f.Message)
			h.raw("</div>\n")
		}
		if data.Error != "" {
			h.raw(`    <div class="flash flash-error form-error">`)
			h.text(data.Error)
			h.raw("</div>\n")
		}

		content(h)

		h.raw("  </section>\n</body>\n</html>\n")
		return h.err
	})
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func date(t time.Time) string {
	return t.Format("2006-01-02")
}

func datetime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func owns(user *model.User, authorID model.UserID) bool {
	return user != nil && user.ID == authorID
}
