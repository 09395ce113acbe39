package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fantasy-keepers/internal/api"
	"github.com/mcoot/fantasy-keepers/internal/api/apierr"
	"github.com/mcoot/fantasy-keepers/internal/api/response"
	"github.com/mcoot/fantasy-keepers/internal/factory"
)

const testRoster = "Team A,,Team B,\n" +
	"Player,$,Player,$\n" +
	"\"Smith, John\",10,\"Doe, Jane\",25\n" +
	"\"Jones, Bob\",95,,\n" +
	"\"Brown, Al\",40,,\n" +
	"\"Green, Sam\",60,,\n"

// testServer wraps the API router over a test app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp(testRoster)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		KeepersController: app.KeepersController,
		Season:            factory.TestSeason,
		CORSOrigins:       []string{"https://keepers.example"},
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody io.Reader = bytes.NewBuffer(nil)
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = strings.NewReader(b)
	default:
		encoded, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.ErrorResponse {
	t.Helper()
	var body apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var body response.Health
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, factory.TestSeason, body.Season)
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr = httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/keepers/submit", nil)
	req.Header.Set("Origin", "https://keepers.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "https://keepers.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/keepers/submit", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetTeams(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/keepers/teams", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body response.Teams
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []string{"Team A", "Team B"}, body.Teams)
	require.Len(t, body.Players["Team A"], 4)
	assert.Equal(t, "John Smith", body.Players["Team A"][0].Name)
	assert.Equal(t, 10, body.Players["Team A"][0].LastYearCost)
	assert.Equal(t, 11, body.Players["Team A"][0].ThisYearCost)
}

func TestGetTeamsWireFormat(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/keepers/teams", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"lastYearCost":10`)
	assert.Contains(t, rr.Body.String(), `"thisYearCost":11`)
}

func TestGetTeam(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/keepers/team/"+url.PathEscape("Team B"), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body response.TeamRoster
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Team B", body.Team)
	require.Len(t, body.Players, 1)
	assert.Equal(t, "Jane Doe", body.Players[0].Name)
}

func TestGetTeamNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/keepers/team/Nobody", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Team not found", decodeError(t, rr).Error)
}

func TestSubmitAndDecrypt(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/keepers/submit", map[string]any{
		"team":     "Team A",
		"players":  []string{"John Smith", "Bob Jones"},
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var submitResp response.Submit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &submitResp))
	assert.True(t, submitResp.Success)
	assert.Equal(t, "Keepers saved successfully", submitResp.Message)
	assert.Equal(t, "Team A", submitResp.Team)
	assert.Equal(t, []string{"John Smith", "Bob Jones"}, submitResp.Keepers)
	require.NotNil(t, submitResp.Summary)
	assert.Equal(t, 116, submitResp.Summary.TotalCost)

	rr = ts.request(http.MethodPost, "/api/keepers/decrypt", map[string]string{
		"team":     "Team A",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var decryptResp response.Decrypt
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decryptResp))
	assert.Equal(t, "Team A", decryptResp.Team)
	assert.Equal(t, []string{"John Smith", "Bob Jones"}, decryptResp.Keepers)
}

func TestSubmitWritesPasswordLog(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/keepers/submit", map[string]any{
		"team":     "Team B",
		"players":  []string{},
		"password": "pw",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Equal(t, []string{"2025-08-01T12:00:00.000Z - Team B used password 'pw'"}, ts.app.Memory.PasswordLog())
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing password", map[string]any{"team": "Team A", "players": []string{}}, "Team and password are required"},
		{"missing team", map[string]any{"password": "pw", "players": []string{}}, "Team and password are required"},
		{"missing players", map[string]any{"team": "Team A", "password": "pw"}, "Invalid player selection"},
		{"players not a list", map[string]any{"team": "Team A", "password": "pw", "players": "John Smith"}, "Invalid player selection"},
		{"too many", map[string]any{
			"team": "Team A", "password": "pw",
			"players": []string{"John Smith", "Bob Jones", "Al Brown", "Sam Green"},
		}, "Maximum 3 keepers allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			rr := ts.request(http.MethodPost, "/api/keepers/submit", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.message, decodeError(t, rr).Error)
			assert.Empty(t, ts.app.Memory.PasswordLog())
		})
	}
}

func TestSubmitMalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/keepers/submit", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestDecryptHidesWhetherTeamSaved(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/keepers/submit", map[string]any{
		"team": "Team A", "players": []string{"John Smith"}, "password": "right",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	wrong := ts.request(http.MethodPost, "/api/keepers/decrypt", map[string]string{"team": "Team A", "password": "wrong"})
	missing := ts.request(http.MethodPost, "/api/keepers/decrypt", map[string]string{"team": "Team B", "password": "right"})

	assert.Equal(t, http.StatusNotFound, wrong.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, apierr.NoSavedKeepersMessage, decodeError(t, wrong).Error)
	assert.Equal(t, wrong.Body.String(), missing.Body.String())
}

func TestDecryptRequiresFields(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/keepers/decrypt", map[string]string{"team": "Team A"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Team and password are required", decodeError(t, rr).Error)
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/keepers/submit", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
