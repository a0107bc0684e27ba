package pages

import (
	"github.com/a-h/templ"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/web/templates/layout"
)

func gamePath(id model.GameID, action string) string {
	return "/games/" + itoa(int64(id)) + "/" + action
}

// GameIndexData lists every game
type GameIndexData struct {
	layout.PageData
	Games []model.Game
}

// GameIndex renders the list of games
func GameIndex(data GameIndexData) templ.Component {
	header := func(h *htmlWriter) {
		h.raw("<h1>Games</h1>\n")
		if data.LoggedIn() {
			h.raw("<a class=\"action\" href=\"/games/create\">New</a>\n")
		}
	}

	return page(data.PageData, "Games", header, func(h *htmlWriter) {
		if len(data.Games) == 0 {
			h.raw("<p class=\"empty\">No games yet.</p>\n")
			return
		}
		for _, g := range data.Games {
			h.raw(`<article class="game" id="game-`)
			h.int(int64(g.ID))
			h.raw("\">\n  <header>\n    <h1><a href=\"")
			h.text(gamePath(g.ID, "game"))
			h.raw(`">When will `)
			h.text(g.LatePerson)
			h.raw(" arrive?</a></h1>\n    <div class=\"about\">expected ")
			h.text(g.ArrivalTime)
			h.raw("</div>\n  </header>\n")
			if g.WinnerID != nil {
				h.raw(`  <p class="winner">Won by <strong>`)
				h.text(g.WinnerUsername)
				h.raw("</strong></p>\n")
			} else {
				h.raw(`  <p class="open"><a href="`)
				h.text(gamePath(g.ID, "guess"))
				h.raw("\">Guess</a></p>\n")
			}
			h.raw("</article>\n<hr>\n")
		}
	})
}

// GameCreateData backs the new game form
type GameCreateData struct {
	layout.PageData
	LatePerson string
	Arrival    string
}

// GameCreate renders the new game form
func GameCreate(data GameCreateData) templ.Component {
	return page(data.PageData, "New Game", nil, func(h *htmlWriter) {
		h.raw(`<form method="post" action="/games/create">
  <label for="late_person">Who is late?</label>
  <input name="late_person" id="late_person" value="`)
		h.text(data.LatePerson)
		h.raw(`" required>
  <label for="arrival">Expected arrival</label>
  <input name="arrival" id="arrival" value="`)
		h.text(data.Arrival)
		h.raw(`" placeholder="HH:MM">
  <input type="submit" value="Create">
</form>
`)
	})
}

// GuessData backs the guess form
type GuessData struct {
	layout.PageData
	Game  model.Game
	Guess string
}

// Guess renders the guess form for a game
func Guess(data GuessData) templ.Component {
	return page(data.PageData, "Guess for "+data.Game.LatePerson, nil, func(h *htmlWriter) {
		h.raw(`<form method="post" action="`)
		h.text(gamePath(data.Game.ID, "guess"))
		h.raw("\">\n  <label for=\"guess\">When will ")
		h.text(data.Game.LatePerson)
		h.raw(` arrive?</label>
  <input type="time" name="guess" id="guess" value="`)
		h.text(data.Guess)
		h.raw(`" required>
  <input type="submit" value="Guess">
</form>
`)
	})
}

// GameData shows one game and its guesses
type GameData struct {
	layout.PageData
	Detail model.GameDetail
}

// Game renders a single game
func Game(data GameData) templ.Component {
	g := data.Detail.Game

	return page(data.PageData, g.LatePerson, nil, func(h *htmlWriter) {
		h.raw("<div class=\"game-info\">\n  <p>Created ")
		h.text(date(g.Created))
		h.raw(", expected ")
		h.text(g.ArrivalTime)
		h.raw("</p>\n")
		switch {
		case g.WinnerID != nil:
			h.raw(`  <p class="winner">Won by <strong>`)
			h.text(g.WinnerUsername)
			h.raw("</strong> at ")
			h.text(datetime(g.ResolvedAt))
			h.raw("</p>\n")
		default:
			h.raw("  <p class=\"open\">Still waiting.</p>\n")
			if data.LoggedIn() {
				h.raw(`  <a class="action" href="`)
				h.text(gamePath(g.ID, "guess"))
				h.raw("\">Guess</a>\n  <a class=\"action\" href=\"")
				h.text(gamePath(g.ID, "win"))
				h.raw("\">They're here!</a>\n")
			}
		}
		h.raw("</div>\n<table class=\"guesses\">\n  <thead><tr><th>Player</th><th>Guess</th></tr></thead>\n  <tbody>\n")
		for _, guess := range data.Detail.Guesses {
			h.raw(`    <tr class="guess"><td>`)
			h.text(guess.PlayerUsername)
			h.raw("</td><td>")
			h.text(guess.GuessedTime)
			h.raw("</td></tr>\n")
		}
		if len(data.Detail.Guesses) == 0 {
			h.raw("    <tr class=\"empty\"><td colspan=\"2\">No guesses yet.</td></tr>\n")
		}
		h.raw("  </tbody>\n</table>\n")
	})
}

// WinData shows the outcome of a game, or the form to resolve it
type WinData struct {
	layout.PageData
	Game       model.Game
	Resolution *model.Resolution
	ArrivedAt  string
	Timezone   string
}

// Win renders the resolution page for a game. It shows the fresh
// Resolution when there is one, the earlier winner when the game was
// already resolved, and the arrival form otherwise.
func Win(data WinData) templ.Component {
	g := data.Game

	return page(data.PageData, g.LatePerson+" has arrived", nil, func(h *htmlWriter) {
		back := func() {
			h.raw(`<a href="`)
			h.text(gamePath(g.ID, "game"))
			h.raw("\">Back to game</a>\n")
		}

		switch res := data.Resolution; {
		case res != nil && res.Winner != nil:
			h.raw("<div class=\"result\">\n  <p>The winner is <strong class=\"winner\">")
			h.text(res.Winner.PlayerUsername)
			h.raw("</strong> with ")
			h.text(res.Winner.GuessedTime)
			h.raw(".</p>\n  <p class=\"points\">+")
			h.int(int64(res.Points))
			h.raw(" point</p>\n</div>\n")
			back()
		case res != nil:
			h.raw("<p class=\"no-winner\">Nobody guessed, so nobody wins.</p>\n")
			back()
		case g.WinnerID != nil:
			h.raw(`<p class="already">Already won by <strong class="winner">`)
			h.text(g.WinnerUsername)
			h.raw("</strong>.</p>\n")
			back()
		default:
			h.raw(`<form method="post" action="`)
			h.text(gamePath(g.ID, "win"))
			h.raw("\">\n  <label for=\"arrived_at\">Arrived at (")
			h.text(data.Timezone)
			h.raw(`, leave blank for now)</label>
  <input type="time" name="arrived_at" id="arrived_at" value="`)
			h.text(data.ArrivedAt)
			h.raw(`">
  <input type="submit" value="Pick the winner">
</form>
`)
		}
	})
}
