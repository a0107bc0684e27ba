package pages

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/web/templates/layout"
)

// PointsboardData is the ranked table of users
type PointsboardData struct {
	layout.PageData
	Standings []model.Standing
}

// Pointsboard renders the leaderboard
func Pointsboard(data PointsboardData) templ.Component {
	return page(data.PageData, "Pointsboard", nil, func(h *htmlWriter) {
		h.raw("<table class=\"pointsboard\">\n  <thead><tr><th>#</th><th>Player</th><th>Points</th></tr></thead>\n  <tbody>\n")
		for _, s := range data.Standings {
			h.raw(`    <tr class="standing"><td class="rank">`)
			h.int(int64(s.Rank))
			h.raw(`</td><td class="username">`)
			h.text(s.Username)
			h.raw(`</td><td class="points">`)
			h.int(int64(s.Points))
			h.raw("</td></tr>\n")
		}
		if len(data.Standings) == 0 {
			h.raw("    <tr class=\"empty\"><td colspan=\"3\">Nobody has registered yet.</td></tr>\n")
		}
		h.raw("  </tbody>\n</table>\n")
	})
}

// ErrorData describes a failed request
type ErrorData struct {
	layout.PageData
	Status  int
	Message string
}

// Error renders an error page
func Error(data ErrorData) templ.Component {
	return page(data.PageData, strconv.Itoa(data.Status), nil, func(h *htmlWriter) {
		h.raw(`<p class="error-message">`)
		h.text(data.Message)
		h.raw("</p>\n<p><a href=\"/\">Return to home</a></p>\n")
	})
}
