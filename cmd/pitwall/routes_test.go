package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AdamBeresnev/pitwall/internal/config"
	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/AdamBeresnev/pitwall/internal/service"
	"github.com/AdamBeresnev/pitwall/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{CORSOrigins: []string{"*"}, StandingsCacheTTL: time.Minute}
}

func TestHealthz(t *testing.T) {
	router := newRouter(testutil.NewDB(t), testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestScoreEventRoute(t *testing.T) {
	conn := testutil.NewDB(t)
	f := testutil.NewFixtures(t, conn)
	router := newRouter(conn, testConfig())

	owner := f.User("admin@example.com")
	user := f.User("test@example.com")
	competition := f.Competition(owner, pool.CompetitionActive, 10, 5)
	drivers := f.Participants(10)

	scored := f.Event(competition, 1, time.Now().Add(-24*time.Hour))
	f.Results(scored, drivers, true)
	f.Prediction(user, scored, drivers[0], 1)

	pending := f.Event(competition, 2, time.Now().Add(-time.Hour))
	f.Results(pending, drivers, false)

	t.Run("scores the event", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/"+scored.ID.String()+"/score", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var report service.ScoreReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 1, report.Scored)
		assert.Equal(t, 10, report.PointsAwarded)
		assert.Equal(t, competition.ID, report.CompetitionID)
	})

	t.Run("nothing left to score", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/"+scored.ID.String()+"/score", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), `"nothing_to_score":true`))
	})

	t.Run("no verified results", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/"+pending.ID.String()+"/score", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown event", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/"+uuid.NewString()+"/score", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/nope/score", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStandingsRoute(t *testing.T) {
	conn := testutil.NewDB(t)
	f := testutil.NewFixtures(t, conn)
	router := newRouter(conn, testConfig())

	owner := f.User("admin@example.com")
	user := f.User("test@example.com")
	competition := f.Competition(owner, pool.CompetitionActive, 10, 5)
	event := f.Event(competition, 1, time.Now().Add(-24*time.Hour))
	drivers := f.Participants(10)
	f.Results(event, drivers, true)
	f.Prediction(user, event, drivers[1], 1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/"+event.ID.String()+"/score", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/competitions/"+competition.ID.String()+"/standings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []pool.StandingEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "test@example.com", entries[0].Email)
	assert.Equal(t, 5, entries[0].TotalPoints)
	assert.Equal(t, 1, entries[0].Rank)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/competitions/"+uuid.NewString()+"/standings", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsRoute(t *testing.T) {
	router := newRouter(testutil.NewDB(t), testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestStandingsRoute_RefreshedAfterScoring(t *testing.T) {
	conn := testutil.NewDB(t)
	f := testutil.NewFixtures(t, conn)
	router := newRouter(conn, testConfig())

	owner := f.User("admin@example.com")
	user := f.User("test@example.com")
	competition := f.Competition(owner, pool.CompetitionActive, 10, 5)
	event := f.Event(competition, 1, time.Now().Add(-24*time.Hour))
	drivers := f.Participants(10)
	f.Results(event, drivers, true)
	f.Prediction(user, event, drivers[0], 1)
	require.NoError(t, f.Stores.Standings.CreateStanding(context.Background(), &pool.Standing{ID: uuid.New(), CompetitionID: competition.ID, UserID: user.ID}))

	standingsURL := "/competitions/" + competition.ID.String() + "/standings"
	totalPoints := func() int {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, standingsURL, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var entries []pool.StandingEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		return entries[0].TotalPoints
	}

	assert.Equal(t, 0, totalPoints())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/"+event.ID.String()+"/score", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 10, totalPoints())
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(testutil.NewDB(t), &config.Config{CORSOrigins: []string{"https://pitwall.example"}})

	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "https://pitwall.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://pitwall.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
