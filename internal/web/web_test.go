package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/lateguess/internal/factory"
	"github.com/mcoot/lateguess/internal/model"
	"github.com/mcoot/lateguess/internal/testutil"
	"github.com/mcoot/lateguess/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp(t)

	router := web.NewRouter(web.RouterConfig{
		Logger:             testutil.NopLogger(),
		AuthService:        app.AuthService,
		BlogService:        app.BlogService,
		GameService:        app.GameService,
		LeaderboardService: app.LeaderboardService,
		SessionTTL:         app.Config.SessionTTL,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return ts.request(http.MethodPost, path, form)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// Helper functions for common test operations

// register creates an account through the register form
func (ts *webTestServer) register(username, password string) {
	ts.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	rr := ts.post("/auth/register", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after registration")
	require.Equal(ts.t, "/auth/login", rr.Header().Get("Location"))
}

// login logs in through the login form
func (ts *webTestServer) login(username, password string) {
	ts.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	rr := ts.post("/auth/login", form)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
}

// signUp registers and logs in a user
func (ts *webTestServer) signUp(username string) {
	ts.t.Helper()
	ts.register(username, "secret")
	ts.login(username, "secret")
}

// logout clears the session
func (ts *webTestServer) logout() {
	ts.t.Helper()
	rr := ts.get("/auth/logout")
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	require.False(ts.t, ts.cookies.hasSession())
}

// createPost creates a post through the form
func (ts *webTestServer) createPost(title, body string) {
	ts.t.Helper()
	rr := ts.post("/create", url.Values{"title": {title}, "body": {body}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after creating post")
}

// createGame creates a game through the form and returns its id
func (ts *webTestServer) createGame(latePerson, arrival string) string {
	ts.t.Helper()
	rr := ts.post("/games/create", url.Values{"late_person": {latePerson}, "arrival": {arrival}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after creating game")

	games, err := ts.app.GameService.List(ts.t.Context())
	require.NoError(ts.t, err)
	require.NotEmpty(ts.t, games)
	return strconvGameID(games[0].ID)
}

// guess submits a guess for a game
func (ts *webTestServer) guess(gameID, at string) {
	ts.t.Helper()
	rr := ts.post("/games/"+gameID+"/guess", url.Values{"guess": {at}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after guessing")
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

func strconvGameID(id model.GameID) string {
	return strconv.FormatInt(int64(id), 10)
}
