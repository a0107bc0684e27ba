package web_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameIndexEmpty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/")

	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".empty", "No games yet.")
	assertNotContainsElement(t, doc, "a[href='/games/create']")
}

func TestGameRoutesRequireLogin(t *testing.T) {
	ts := newWebTestServer(t)

	for _, path := range []string{"/games/create", "/games/1/guess", "/games/1/win"} {
		rr := ts.get(path)
		assert.Equal(t, http.StatusSeeOther, rr.Code, path)
		assert.Contains(t, rr.Header().Get("Location"), "/auth/login", path)
	}
}

func TestCreateGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")

	rr := ts.post("/games/create", url.Values{"late_person": {"Dave"}, "arrival": {"10:00"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/games/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-success", "New game was successfully created!")
	assertContainsText(t, doc, "article.game h1", "Dave")
	assertContainsText(t, doc, "article.game .about", "10:00")
}

func TestCreateGameRequiresLatePerson(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")

	rr := ts.post("/games/create", url.Values{"late_person": {""}, "arrival": {"10:00"}})

	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), ".form-error", "You can't leave the field blank!")
}

func TestGuessShownOnGamePage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")
	id := ts.createGame("Dave", "10:00")

	rr := ts.get("/games/" + id + "/guess")
	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsElement(t, parseHTML(rr.Body), "form input[name='guess']")

	rr = ts.post("/games/"+id+"/guess", url.Values{"guess": {"09:55"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/games/"+id+"/game", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, "tr.guess", "alice")
	assertContainsText(t, doc, "tr.guess", "09:55")
}

func TestGamePageIsPublic(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")
	id := ts.createGame("Dave", "10:00")
	ts.logout()

	rr := ts.get("/games/" + id + "/game")
	assert.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "tr.empty", "No guesses yet.")
	// Actions are hidden from anonymous visitors
	assertNotContainsElement(t, doc, "a[href$='/win']")
}

func TestGuessValidation(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")
	id := ts.createGame("Dave", "10:00")

	rr := ts.post("/games/"+id+"/guess", url.Values{"guess": {""}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), ".form-error", "You can't leave the field blank!")

	rr = ts.post("/games/"+id+"/guess", url.Values{"guess": {"soonish"}})
	assertContainsText(t, parseHTML(rr.Body), ".form-error", "Guess must be a time in HH:MM format.")
}

func TestUnknownGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")

	assert.Equal(t, http.StatusNotFound, ts.get("/games/99/game").Code)
	assert.Equal(t, http.StatusNotFound, ts.get("/games/99/guess").Code)
	assert.Equal(t, http.StatusNotFound, ts.post("/games/99/guess", url.Values{"guess": {"10:00"}}).Code)
	assert.Equal(t, http.StatusNotFound, ts.post("/games/99/win", nil).Code)
}

func TestWinPicksNearestGuess(t *testing.T) {
	ts := newWebTestServer(t)

	ts.signUp("alice")
	id := ts.createGame("Dave", "10:00")
	ts.guess(id, "10:30")
	ts.logout()

	ts.signUp("bob")
	ts.guess(id, "09:58")
	ts.logout()

	ts.signUp("carol")
	ts.guess(id, "10:05")

	rr := ts.get("/games/" + id + "/win")
	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsElement(t, parseHTML(rr.Body), "form input[name='arrived_at']")

	rr = ts.post("/games/"+id+"/win", url.Values{"arrived_at": {"10:00"}})
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".result .winner", "bob")
	assertContainsText(t, doc, ".result .points", "+1")

	// Pointsboard reflects the win
	doc = parseHTML(ts.get("/pointsboard").Body)
	first := doc.Find("tr.standing").First()
	assert.Contains(t, first.Find(".username").Text(), "bob")
	assert.Contains(t, first.Find(".points").Text(), "1")

	// The game shows its winner
	doc = parseHTML(ts.get("/games/" + id + "/game").Body)
	assertContainsText(t, doc, ".winner", "bob")
}

func TestWinUsesClockWhenNoArrivalGiven(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")
	id := ts.createGame("Dave", "")
	ts.guess(id, "11:00")
	ts.logout()
	ts.signUp("bob")
	ts.guess(id, "12:10")

	ts.app.MockClock.Set(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	rr := ts.post("/games/"+id+"/win", url.Values{"arrived_at": {""}})
	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), ".result .winner", "bob")
}

func TestWinWithoutGuesses(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")
	id := ts.createGame("Dave", "10:00")

	rr := ts.post("/games/"+id+"/win", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), ".no-winner", "Nobody guessed")

	// Game stays open
	doc := parseHTML(ts.get("/games/" + id + "/game").Body)
	assertContainsElement(t, doc, ".open")
}

func TestWinTwiceDoesNotReAward(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")
	id := ts.createGame("Dave", "10:00")
	ts.guess(id, "10:00")

	rr := ts.post("/games/"+id+"/win", url.Values{"arrived_at": {"10:00"}})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.post("/games/"+id+"/win", url.Values{"arrived_at": {"10:00"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-info", "already been resolved")

	user, err := ts.app.Storage.GetUserByUsername(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, user.Points)

	// Resolved games show the stored winner and refuse new guesses
	doc = parseHTML(ts.get("/games/" + id + "/win").Body)
	assertContainsText(t, doc, ".already .winner", "alice")
	rr = ts.post("/games/"+id+"/guess", url.Values{"guess": {"10:00"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestWinRejectsBadArrival(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")
	id := ts.createGame("Dave", "10:00")

	rr := ts.post("/games/"+id+"/win", url.Values{"arrived_at": {"late"}})

	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), ".form-error", "Arrival must be a time in HH:MM format.")
}
