package web_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/lateguess/internal/factory"
	"github.com/mcoot/lateguess/internal/web"
)

func TestHello(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/hello")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Hello, World!", rr.Body.String())
}

func TestPointsboardEmpty(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/pointsboard")

	assert.Equal(t, http.StatusOK, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "tr.empty", "Nobody has registered yet.")
}

func TestPointsboardListsEveryone(t *testing.T) {
	ts := newWebTestServer(t)
	ts.register("alice", "secret")
	ts.register("bob", "secret")

	doc := parseHTML(ts.get("/pointsboard").Body)
	assert.Equal(t, 2, doc.Find("tr.standing").Length())
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/no/such/page")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assertContainsElement(t, parseHTML(rr.Body), ".error-message")
}

func TestRequestIDHeader(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")

	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestStaticStylesheet(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/static/style.css")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "font-family")
}

func TestFlashShownOnce(t *testing.T) {
	ts := newWebTestServer(t)
	ts.signUp("alice")
	ts.createGame("Dave", "10:00")

	doc := parseHTML(ts.get("/games/").Body)
	assertContainsElement(t, doc, ".flash")

	doc = parseHTML(ts.get("/games/").Body)
	assertNotContainsElement(t, doc, ".flash")
}

func TestDatabaseFailureRendersServerError(t *testing.T) {
	app := factory.NewTestApp(t)

	var logs bytes.Buffer
	router := web.NewRouter(web.RouterConfig{
		Logger:             slog.New(slog.NewJSONHandler(&logs, nil)),
		AuthService:        app.AuthService,
		BlogService:        app.BlogService,
		GameService:        app.GameService,
		LeaderboardService: app.LeaderboardService,
		SessionTTL:         app.Config.SessionTTL,
	})

	require.NoError(t, app.Storage.Close())

	paths := []string{"/", "/games/", "/pointsboard", "/games/1/game"}
	for _, path := range paths {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code, path)
		assertContainsText(t, parseHTML(rr.Body), ".error-message", "Something went wrong.")
	}

	// One handler log line per failed request, carrying the storage error
	failures := 0
	for line := range strings.Lines(logs.String()) {
		if strings.Contains(line, `"msg":"request failed"`) {
			failures++
			assert.Contains(t, line, "database is closed")
		}
	}
	assert.Equal(t, len(paths), failures)
}
