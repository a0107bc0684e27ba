package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/services/game"
	"github.com/mcoot/lateguess/internal/web/middleware"
	"github.com/mcoot/lateguess/internal/web/templates/pages"
)

// GameHandler handles game pages and actions
type GameHandler struct {
	gameService *game.Service
	renderer
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService *game.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		renderer:    renderer{logger: logger},
	}
}

// Index lists every game
func (h *GameHandler) Index(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, pages.GameIndex(pages.GameIndexData{
		PageData: pageData(r, "Games"),
		Games:    games,
	}))
}

// CreatePage renders the new game form
func (h *GameHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	h.ok(w, r, pages.GameCreate(pages.GameCreateData{PageData: pageData(r, "New Game")}))
}

// Create handles new game submission
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.status(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	latePerson := r.FormValue("late_person")
	arrival := r.FormValue("arrival")

	_, err := h.gameService.Create(r.Context(), middleware.GetUser(r.Context()), latePerson, arrival)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			data := pages.GameCreateData{PageData: pageData(r, "New Game"), LatePerson: latePerson, Arrival: arrival}
			data.Error = msg
			h.ok(w, r, pages.GameCreate(data))
			return
		}
		h.fail(w, r, err)
		return
	}

	middleware.SetFlash(w, "success", "New game was successfully created!")
	http.Redirect(w, r, "/games/", http.StatusSeeOther)
}

// GuessPage renders the guess form for an open game
func (h *GameHandler) GuessPage(w http.ResponseWriter, r *http.Request) {
	g, ok := h.loadGame(w, r)
	if !ok {
		return
	}
	if g.IsResolved() {
		h.redirectResolved(w, r, g.ID)
		return
	}

	h.ok(w, r, pages.Guess(pages.GuessData{PageData: pageData(r, "Guess"), Game: *g}))
}

// Guess handles guess submission
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.status(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	guessed := r.FormValue("guess")

	_, err := h.gameService.SubmitGuess(r.Context(), id, middleware.GetUser(r.Context()), guessed)
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			g, ok := h.loadGame(w, r)
			if !ok {
				return
			}
			data := pages.GuessData{PageData: pageData(r, "Guess"), Game: *g, Guess: guessed}
			data.Error = msg
			h.ok(w, r, pages.Guess(data))
			return
		}
		if errors.Is(err, model.ErrGameResolved) {
			h.redirectResolved(w, r, id)
			return
		}
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
}

// View shows a game and its guesses
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	detail, err := h.gameService.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, pages.Game(pages.GameData{
		PageData: pageData(r, detail.Game.LatePerson),
		Detail:   *detail,
	}))
}

// WinPage shows the winner of a resolved game, or the form to resolve it
func (h *GameHandler) WinPage(w http.ResponseWriter, r *http.Request) {
	g, ok := h.loadGame(w, r)
	if !ok {
		return
	}

	h.ok(w, r, pages.Win(pages.WinData{
		PageData: pageData(r, "Winner"),
		Game:     *g,
		Timezone: h.gameService.Location().String(),
	}))
}

// Win resolves a game at the submitted arrival time, or now
func (h *GameHandler) Win(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.status(w, r, http.StatusBadRequest, "Invalid form data")
		return
	}

	arrivedAt := r.FormValue("arrived_at")

	at, err := h.gameService.ArrivalAt(arrivedAt)
	if err != nil {
		g, ok := h.loadGame(w, r)
		if !ok {
			return
		}
		msg, _ := validationMessage(err)
		data := pages.WinData{
			PageData:  pageData(r, "Winner"),
			Game:      *g,
			ArrivedAt: arrivedAt,
			Timezone:  h.gameService.Location().String(),
		}
		data.Error = msg
		h.ok(w, r, pages.Win(data))
		return
	}

	res, err := h.gameService.ResolveWinner(r.Context(), id, at)
	if err != nil {
		if errors.Is(err, model.ErrGameResolved) {
			h.redirectResolved(w, r, id)
			return
		}
		h.fail(w, r, err)
		return
	}

	h.ok(w, r, pages.Win(pages.WinData{
		PageData:   pageData(r, "Winner"),
		Game:       res.Game,
		Resolution: res,
		Timezone:   h.gameService.Location().String(),
	}))
}

func (h *GameHandler) loadGame(w http.ResponseWriter, r *http.Request) (*model.Game, bool) {
	id, ok := h.gameID(w, r)
	if !ok {
		return nil, false
	}

	detail, err := h.gameService.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return &detail.Game, true
}

func (h *GameHandler) gameID(w http.ResponseWriter, r *http.Request) (model.GameID, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.status(w, r, http.StatusNotFound, "The requested page could not be found.")
		return 0, false
	}
	return model.GameID(id), true
}

func (h *GameHandler) redirectResolved(w http.ResponseWriter, r *http.Request, id model.GameID) {
	middleware.SetFlash(w, "info", "This game has already been resolved.")
	http.Redirect(w, r, gamePath(id), http.StatusSeeOther)
}

func gamePath(id model.GameID) string {
	return "/games/" + strconv.FormatInt(int64(id), 10) + "/game"
}
