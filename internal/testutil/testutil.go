// Package testutil builds migrated in-memory databases and domain fixtures
// for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AdamBeresnev/pitwall/internal/db"
	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/AdamBeresnev/pitwall/internal/store"
	users "github.com/AdamBeresnev/pitwall/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewDB returns a migrated in-memory SQLite database that is closed when the
// test ends. The pool is capped at one connection because every connection
// to file::memory: opens a separate database.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect(db.DriverSQLite, "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, db.RunMigrations(conn), "Failed to apply migrations")
	return conn
}

type Fixtures struct {
	t          testing.TB
	ctx        context.Context
	Stores     *store.Stores
	nextNumber int
}

func NewFixtures(t testing.TB, conn *sqlx.DB) *Fixtures {
	return &Fixtures{t: t, ctx: context.Background(), Stores: store.New(conn), nextNumber: 1}
}

func (f *Fixtures) User(email string) *users.User {
	f.t.Helper()
	user := &users.User{ID: uuid.New(), Email: email, Username: email}
	require.NoError(f.t, f.Stores.Users.CreateUser(f.ctx, user))
	return user
}

func (f *Fixtures) Competition(owner *users.User, status pool.CompetitionStatus, exact, partial int) *pool.Competition {
	f.t.Helper()
	competition := &pool.Competition{
		ID:                       uuid.New(),
		Name:                     "Season " + string(status),
		Year:                     2025,
		Status:                   status,
		StartDate:                time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:                  time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC),
		ExactPositionPoints:      exact,
		CorrectParticipantPoints: partial,
		CreatedBy:                owner.ID,
	}
	require.NoError(f.t, f.Stores.Competitions.CreateCompetition(f.ctx, competition))
	return competition
}

// Event creates an event whose prediction deadline is one hour before start.
func (f *Fixtures) Event(competition *pool.Competition, round int, startsAt time.Time) *pool.Event {
	f.t.Helper()
	event := &pool.Event{
		ID:                 uuid.New(),
		CompetitionID:      competition.ID,
		Name:               fmt.Sprintf("Round %d Grand Prix", round),
		RoundNumber:        round,
		ScheduledAt:        startsAt,
		PredictionDeadline: startsAt.Add(-time.Hour),
		Status:             pool.EventScheduled,
	}
	require.NoError(f.t, f.Stores.Competitions.CreateEvent(f.ctx, event))
	return event
}

// Participants creates n active participants with consecutive unique numbers.
func (f *Fixtures) Participants(n int) []pool.Participant {
	f.t.Helper()
	participants := make([]pool.Participant, 0, n)
	for i := 0; i < n; i++ {
		number := f.nextNumber
		f.nextNumber++
		participant := pool.Participant{
			ID:        uuid.New(),
			Number:    number,
			FirstName: fmt.Sprintf("Driver%d", number),
			LastName:  "Test",
			Team:      "Team",
			IsActive:  true,
		}
		require.NoError(f.t, f.Stores.Competitions.CreateParticipant(f.ctx, &participant))
		participants = append(participants, participant)
	}
	return participants
}

// Results records participants[i] finishing at position i+1.
func (f *Fixtures) Results(event *pool.Event, participants []pool.Participant, verified bool) {
	f.t.Helper()
	for i, participant := range participants {
		result := &pool.Result{
			ID:            uuid.New(),
			EventID:       event.ID,
			ParticipantID: participant.ID,
			Position:      i + 1,
			Verified:      verified,
		}
		require.NoError(f.t, f.Stores.Predictions.CreateResult(f.ctx, result))
	}
}

func (f *Fixtures) TopTen() *pool.PredictionType {
	f.t.Helper()
	predictionType, err := f.Stores.Competitions.GetPredictionTypeByCode(f.ctx, pool.TypeTopTen)
	require.NoError(f.t, err)
	return predictionType
}

func (f *Fixtures) Prediction(user *users.User, event *pool.Event, participant pool.Participant, position int) *pool.Prediction {
	f.t.Helper()
	return f.PredictionOfType(pool.TypeTopTen, user, event, participant, position)
}

// PredictionOfType stores a prediction directly, bypassing the checks of
// the placement workflow.
func (f *Fixtures) PredictionOfType(code pool.PredictionTypeCode, user *users.User, event *pool.Event, participant pool.Participant, position int) *pool.Prediction {
	f.t.Helper()
	predictionType, err := f.Stores.Competitions.GetPredictionTypeByCode(f.ctx, code)
	require.NoError(f.t, err)

	prediction := &pool.Prediction{
		ID:                uuid.New(),
		UserID:            user.ID,
		EventID:           event.ID,
		PredictionTypeID:  predictionType.ID,
		ParticipantID:     participant.ID,
		PredictedPosition: position,
	}
	require.NoError(f.t, f.Stores.Predictions.CreatePrediction(f.ctx, prediction))
	return prediction
}

func (f *Fixtures) Reload(prediction *pool.Prediction) *pool.Prediction {
	f.t.Helper()
	fetched, err := f.Stores.Predictions.GetPrediction(f.ctx, prediction.ID)
	require.NoError(f.t, err)
	return fetched
}

func (f *Fixtures) Standing(competition *pool.Competition, user *users.User) *pool.Standing {
	f.t.Helper()
	standing, err := f.Stores.Standings.GetStanding(f.ctx, competition.ID, user.ID)
	require.NoError(f.t, err)
	return standing
}

func (f *Fixtures) Profile(user *users.User) *users.Profile {
	f.t.Helper()
	profile, err := f.Stores.Users.GetProfile(f.ctx, user.ID)
	require.NoError(f.t, err)
	return profile
}
