package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/lateguess/internal/api/response"
)

const timeLayout = "2006-01-02 15:04"

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
		fmt.Fprintf(o.w, "Database: %s\n", v.Database)
	case []response.Post:
		o.printPosts(v)
	case []response.Game:
		o.printGames(v)
	case response.GameDetail:
		o.printGameDetail(v)
	case []response.Standing:
		o.printStandings(v)
	case response.User:
		fmt.Fprintf(o.w, "User: %s (#%d)\n", v.Username, v.ID)
		fmt.Fprintf(o.w, "Points: %d\n", v.Points)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPosts(posts []response.Post) {
	if len(posts) == 0 {
		fmt.Fprintln(o.w, "No posts yet.")
		return
	}
	for i, p := range posts {
		if i > 0 {
			fmt.Fprintln(o.w)
		}
		fmt.Fprintf(o.w, "#%d %s\n", p.ID, p.Title)
		fmt.Fprintf(o.w, "by %s on %s\n", p.Author, p.Created.Format("2006-01-02"))
		for line := range strings.Lines(p.Body) {
			fmt.Fprintf(o.w, "  %s\n", strings.TrimRight(line, "\r\n"))
		}
	}
}

func (o *Output) printGames(games []response.Game) {
	if len(games) == 0 {
		fmt.Fprintln(o.w, "No games yet.")
		return
	}
	for _, g := range games {
		fmt.Fprintf(o.w, "#%d %s (%s) %s\n", g.ID, g.LatePerson, g.ArrivalTime, winnerText(g))
	}
}

func (o *Output) printGameDetail(d response.GameDetail) {
	fmt.Fprintf(o.w, "Game: #%d\n", d.ID)
	fmt.Fprintf(o.w, "Late person: %s\n", d.LatePerson)
	fmt.Fprintf(o.w, "Arrival time: %s\n", d.ArrivalTime)
	fmt.Fprintf(o.w, "Created: %s\n", d.Created.Format(timeLayout))
	fmt.Fprintf(o.w, "Status: %s\n", winnerText(d.Game))

	if len(d.Guesses) == 0 {
		fmt.Fprintln(o.w, "No guesses yet.")
		return
	}
	fmt.Fprintf(o.w, "Guesses (%d):\n", len(d.Guesses))
	for _, g := range d.Guesses {
		fmt.Fprintf(o.w, "  - %s %s\n", g.Player, g.GuessedTime)
	}
}

func (o *Output) printStandings(standings []response.Standing) {
	if len(standings) == 0 {
		fmt.Fprintln(o.w, "No players yet.")
		return
	}
	for _, s := range standings {
		fmt.Fprintf(o.w, "%d. %s %d\n", s.Rank, s.Username, s.Points)
	}
}

func winnerText(g response.Game) string {
	if g.Winner == "" {
		return "open"
	}
	return "won by " + g.Winner
}
