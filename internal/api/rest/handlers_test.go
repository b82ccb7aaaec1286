package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/service"
)

func TestHealthCheck(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()

	h.HealthCheck(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "augur", body["service"])
}

func TestGetTeams(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()

	h.GetTeams(rec, httptest.NewRequest("GET", "/api/v1/teams", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Teams []struct {
			ID           int    `json:"id"`
			Abbreviation string `json:"abbreviation"`
			Name         string `json:"name"`
		} `json:"teams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Teams, 30)
}

func TestAnalyzeRejectsBadBody(t *testing.T) {
	h := NewHandler(nil)

	rec := httptest.NewRecorder()
	h.Analyze(rec, httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader("{broken")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Analyze(rec, httptest.NewRequest("POST", "/api/v1/analyze", strings.NewReader(`{"lines":{"PTS":25.5}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "player name is required")
}

func TestSearchPlayersRequiresQuery(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()

	h.SearchPlayers(rec, httptest.NewRequest("GET", "/api/v1/players/search", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrPlayerNotFound, http.StatusNotFound},
		{service.ErrNoUpcomingGame, http.StatusNotFound},
		{service.ErrDataUnavailable, http.StatusBadGateway},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		respondServiceError(rec, tc.err)
		assert.Equal(t, tc.want, rec.Code, tc.err.Error())
	}
}

func TestCORSMiddlewareAnswersPreflight(t *testing.T) {
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/v1/analyze", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
