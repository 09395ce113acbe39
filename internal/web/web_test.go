package web_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fantasy-keepers/internal/factory"
	"github.com/mcoot/fantasy-keepers/internal/web"
)

const testRoster = "Team A,,Team B,\n" +
	"Player,$,Player,$\n" +
	"\"Smith, John\",10,\"Doe, Jane\",25\n" +
	"\"Jones, Bob\",95,\"O'Neil, Shaq\",5\n" +
	"\"Brown, Al\",40,,\n" +
	"\"Green, Sam\",60,,\n"

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

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp(testRoster)

	router := web.NewRouter(web.RouterConfig{
		Logger:            logger,
		KeepersController: app.KeepersController,
		Season:            factory.TestSeason,
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
	return ts.request(http.MethodPost, path, form)
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
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

func TestTeamPicker(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	options := doc.Find("#team option").Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("value", "")
	})
	assert.Equal(t, []string{"", "Team A", "Team B"}, options)
	assertNotContainsElement(t, doc, "#roster")
	assertNotContainsElement(t, doc, "#lock-in")
}

func TestRosterTable(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/?team=" + url.QueryEscape("Team A"))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#team option[selected]", "Team A")
	assert.Equal(t, 4, doc.Find("#roster tr.player").Length())

	first := doc.Find("#roster tr.player").First()
	assert.Equal(t, "John Smith", first.Find(".name").Text())
	assert.Equal(t, "$10", first.Find(".last-cost").Text())
	assert.Equal(t, "$11", first.Find(".cost").Text())
	assert.Equal(t, 0, doc.Find("#roster input[checked]").Length())

	assertContainsText(t, doc, "#summary .total", "$0")
	assertContainsText(t, doc, "#summary .remaining", "$200")
	assert.True(t, doc.Find("#summary").HasClass("under-budget"))
}

func TestEscapesPlayerNames(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/?team=" + url.QueryEscape("Team B"))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, "Shaq O'Neil", doc.Find("#roster tr.player").Eq(1).Find(".name").Text())
	assert.Equal(t, "Shaq O'Neil", doc.Find("#roster tr.player").Eq(1).Find("input").AttrOr("value", ""))
}

func TestPreviewSelectionBands(t *testing.T) {
	tests := []struct {
		name    string
		keepers []string
		total   string
		band    string
	}{
		{"under", []string{"John Smith"}, "$11", "under-budget"},
		{"near", []string{"Bob Jones", "Sam Green"}, "$171", "near-budget"},
		{"over", []string{"Bob Jones", "Sam Green", "Al Brown"}, "$215", "over-budget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newWebTestServer(t)
			q := url.Values{"team": {"Team A"}, "keeper": tt.keepers}

			rr := ts.get("/?" + q.Encode())
			require.Equal(t, http.StatusOK, rr.Code)

			doc := parseHTML(rr.Body)
			assertContainsText(t, doc, "#summary .total", tt.total)
			assert.True(t, doc.Find("#summary").HasClass(tt.band))
			assert.Equal(t, len(tt.keepers), doc.Find("#roster input[checked]").Length())
			assert.Equal(t, len(tt.keepers), doc.Find("#lock-in input[name=keeper]").Length())
		})
	}
}

func TestPreviewCapsAtThreeKeepers(t *testing.T) {
	ts := newWebTestServer(t)
	q := url.Values{"team": {"Team A"}, "keeper": {"John Smith", "Bob Jones", "Al Brown", "Sam Green"}}

	rr := ts.get("/?" + q.Encode())
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 3, doc.Find("#roster input[checked]").Length())
	assertContainsText(t, doc, ".flash-error", "Maximum 3 keepers allowed")
}

func TestPreviewIgnoresUnknownNames(t *testing.T) {
	ts := newWebTestServer(t)
	q := url.Values{"team": {"Team A"}, "keeper": {"Jane Doe", "John Smith"}}

	rr := ts.get("/?" + q.Encode())
	doc := parseHTML(rr.Body)

	assert.Equal(t, 1, doc.Find("#roster input[checked]").Length())
	assertContainsText(t, doc, "#summary .count", "1")
}

func TestUnknownTeam(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/?team=Nobody")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Team not found")
	assertNotContainsElement(t, doc, "#roster")
}

func TestLockInSuccess(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"team":     {"Team A"},
		"keeper":   {"John Smith", "Al Brown"},
		"password": {"hunter2"},
	}
	rr := ts.post("/", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	require.Equal(t, http.StatusOK, rr.Code)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Keepers locked in for Team A")
	assert.Equal(t, 2, doc.Find("#roster input[checked]").Length())

	confirmation, err := ts.app.KeepersController.Decrypt(context.Background(), "Team A", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "Al Brown"}, confirmation.Keepers)
}

func TestLockInEmptySelection(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/", url.Values{"team": {"Team B"}, "password": {"pw"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	confirmation, err := ts.app.KeepersController.Decrypt(context.Background(), "Team B", "pw")
	require.NoError(t, err)
	assert.Empty(t, confirmation.Keepers)
}

func TestLockInOverBudgetWarns(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{
		"team":     {"Team A"},
		"keeper":   {"Bob Jones", "Sam Green", "Al Brown"},
		"password": {"pw"},
	}
	rr := ts.followRedirect(ts.post("/", form))

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "over the $200 cap")
}

func TestLockInMissingPassword(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"team": {"Team A"}, "keeper": {"John Smith"}}
	rr := ts.post("/", form)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "Team and password are required")
	assert.Equal(t, 1, doc.Find("#roster input[checked]").Length())
	assert.Empty(t, ts.app.Memory.PasswordLog())
}

func TestFlashShownOnce(t *testing.T) {
	ts := newWebTestServer(t)

	form := url.Values{"team": {"Team A"}, "password": {"pw"}}
	rr := ts.followRedirect(ts.post("/", form))
	assertContainsElement(t, parseHTML(rr.Body), ".flash-success")

	rr = ts.get("/?team=" + url.QueryEscape("Team A"))
	assertNotContainsElement(t, parseHTML(rr.Body), ".flash")
}
