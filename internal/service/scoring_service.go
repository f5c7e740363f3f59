package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/pitwall/internal/metrics"
	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/AdamBeresnev/pitwall/internal/scoring"
	"github.com/AdamBeresnev/pitwall/internal/store"
	users "github.com/AdamBeresnev/pitwall/internal/user"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ScoringService turns verified results into points and rebuilds the
// standings of the owning competition. Runs for the same competition are
// serialized and each run commits or rolls back as a whole.
type ScoringService struct {
	db     *sqlx.DB
	stores *store.Stores
	locks  *competitionLocks
}

func NewScoringService(db *sqlx.DB, stores *store.Stores) *ScoringService {
	return &ScoringService{db: db, stores: stores, locks: newCompetitionLocks()}
}

type ScoreReport struct {
	EventID          uuid.UUID `json:"event_id"`
	CompetitionID    uuid.UUID `json:"competition_id"`
	EventName        string    `json:"event_name"`
	NothingToScore   bool      `json:"nothing_to_score"`
	Scored           int       `json:"scored"`
	PointsAwarded    int       `json:"points_awarded"`
	ExactMatches     int       `json:"exact_matches"`
	PartialMatches   int       `json:"partial_matches"`
	StandingsUpdated int       `json:"standings_updated"`
}

// ScoreEvent scores every unscored prediction of the event. It fails with
// ErrNotFound for an unknown event and ErrNoVerifiedResults when no result is
// verified yet. When every prediction is already scored it reports
// NothingToScore and changes nothing.
func (s *ScoringService) ScoreEvent(ctx context.Context, eventID uuid.UUID) (*ScoreReport, error) {
	started := time.Now()

	event, err := s.stores.Competitions.GetEvent(ctx, eventID)
	if err != nil {
		err = lookup(err, "event %s", eventID)
		metrics.RecordScoringRun(outcomeOf(nil, err), started)
		return nil, err
	}

	unlock := s.locks.lock(event.CompetitionID)
	defer unlock()

	report, err := s.scoreEvent(ctx, eventID)
	metrics.RecordScoringRun(outcomeOf(report, err), started)
	if err != nil {
		return nil, err
	}

	if report.NothingToScore {
		slog.Warn("no unscored predictions found", "event_id", eventID, "event", report.EventName)
		return report, nil
	}
	slog.Info("event scored",
		"event_id", eventID,
		"event", report.EventName,
		"scored", report.Scored,
		"points_awarded", report.PointsAwarded,
		"standings_updated", report.StandingsUpdated,
	)
	return report, nil
}

func (s *ScoringService) scoreEvent(ctx context.Context, eventID uuid.UUID) (*ScoreReport, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, persistence("begin transaction", err)
	}
	defer tx.Rollback()

	stores := s.stores.WithTx(tx)

	event, err := stores.Competitions.GetEvent(ctx, eventID)
	if err != nil {
		return nil, lookup(err, "event %s", eventID)
	}

	results, err := stores.Predictions.ListVerifiedResults(ctx, eventID)
	if err != nil {
		return nil, persistence("list verified results", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w for event %q", ErrNoVerifiedResults, event.Name)
	}

	report := &ScoreReport{EventID: event.ID, CompetitionID: event.CompetitionID, EventName: event.Name}

	predictions, err := stores.Predictions.ListUnscoredPredictions(ctx, eventID)
	if err != nil {
		return nil, persistence("list unscored predictions", err)
	}
	if len(predictions) == 0 {
		report.NothingToScore = true
		return report, nil
	}

	competition, err := stores.Competitions.GetCompetition(ctx, event.CompetitionID)
	if err != nil {
		return nil, lookup(err, "competition %s", event.CompetitionID)
	}

	slog.Info("scoring event", "event_id", event.ID, "event", event.Name, "predictions", len(predictions))

	rules := scoring.RulesFor(competition)
	positions := scoring.Positions(results)

	type scored struct {
		outcome scoring.Outcome
		points  int
	}
	awarded := make([]scored, 0, len(predictions))

	for i := range predictions {
		p := &predictions[i]
		points, outcome := rules.Score(p, positions)

		switch outcome {
		case scoring.Exact:
			report.ExactMatches++
			slog.Info("exact match", "user_id", p.UserID, "participant_id", p.ParticipantID, "position", p.PredictedPosition, "points", points)
		case scoring.Partial:
			report.PartialMatches++
			slog.Info("partial match", "user_id", p.UserID, "participant_id", p.ParticipantID, "predicted", p.PredictedPosition, "actual", positions[p.ParticipantID], "points", points)
		}

		if err := stores.Predictions.MarkPredictionScored(ctx, p.ID, points); err != nil {
			return nil, persistence("mark prediction scored", err)
		}
		report.Scored++
		report.PointsAwarded += points
		awarded = append(awarded, scored{outcome: outcome, points: points})
	}

	if err := stores.Competitions.UpdateEventStatus(ctx, event.ID, pool.EventCompleted); err != nil {
		return nil, persistence("complete event", err)
	}

	updated, err := recomputeStandings(ctx, stores, competition)
	if err != nil {
		return nil, err
	}
	report.StandingsUpdated = updated

	if err := tx.Commit(); err != nil {
		return nil, persistence("commit scoring", err)
	}

	for _, a := range awarded {
		metrics.RecordPrediction(a.outcome.String(), a.points)
	}
	return report, nil
}

// RecomputeStandings rebuilds every standing of the competition from its
// predictions in a transaction of its own. It returns the number of
// standing rows ranked.
func (s *ScoringService) RecomputeStandings(ctx context.Context, competitionID uuid.UUID) (int, error) {
	unlock := s.locks.lock(competitionID)
	defer unlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, persistence("begin transaction", err)
	}
	defer tx.Rollback()

	stores := s.stores.WithTx(tx)

	competition, err := stores.Competitions.GetCompetition(ctx, competitionID)
	if err != nil {
		return 0, lookup(err, "competition %s", competitionID)
	}

	updated, err := recomputeStandings(ctx, stores, competition)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, persistence("commit standings", err)
	}
	return updated, nil
}

func recomputeStandings(ctx context.Context, stores *store.Stores, competition *pool.Competition) (int, error) {
	started := time.Now()
	defer metrics.RecordStandingsRecompute(started)

	predictions, err := stores.Predictions.ListCompetitionPredictions(ctx, competition.ID)
	if err != nil {
		return 0, persistence("list competition predictions", err)
	}

	for _, tally := range scoring.TallyPredictions(scoring.RulesFor(competition), predictions) {
		if err := upsertStanding(ctx, stores.Standings, competition.ID, tally); err != nil {
			return 0, err
		}

		lifetime, err := stores.Predictions.SumScoredPoints(ctx, tally.UserID)
		if err != nil {
			return 0, persistence("sum lifetime points", err)
		}
		if err := upsertProfilePoints(ctx, stores.Users, tally.UserID, lifetime); err != nil {
			return 0, err
		}
	}

	// Members who joined but never predicted keep their row and are ranked too
	entries, err := stores.Standings.ListStandingEntries(ctx, competition.ID)
	if err != nil {
		return 0, persistence("list standings", err)
	}
	scoring.Rank(entries)
	for _, entry := range entries {
		if err := stores.Standings.UpdateStandingRank(ctx, entry.ID, entry.Rank); err != nil {
			return 0, persistence("update rank", err)
		}
	}

	slog.Info("standings updated", "competition_id", competition.ID, "participants", len(entries))
	return len(entries), nil
}

func upsertStanding(ctx context.Context, standings *store.StandingStore, competitionID uuid.UUID, tally scoring.Tally) error {
	standing, err := standings.GetStanding(ctx, competitionID, tally.UserID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return persistence("get standing", err)
	}

	if standing == nil {
		standing = &pool.Standing{
			ID:            uuid.New(),
			CompetitionID: competitionID,
			UserID:        tally.UserID,
		}
		applyTally(standing, tally)
		if err := standings.CreateStanding(ctx, standing); err != nil {
			return persistence("create standing", err)
		}
		return nil
	}

	applyTally(standing, tally)
	if err := standings.UpdateStandingTotals(ctx, standing); err != nil {
		return persistence("update standing", err)
	}
	return nil
}

func applyTally(standing *pool.Standing, tally scoring.Tally) {
	standing.TotalPoints = tally.TotalPoints
	standing.EventsPredicted = tally.EventsPredicted
	standing.ExactPredictions = tally.ExactPredictions
	standing.PartialPredictions = tally.PartialPredictions
}

func upsertProfilePoints(ctx context.Context, profiles *store.UserStore, userID uuid.UUID, totalPoints int) error {
	_, err := profiles.GetProfile(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		if err := profiles.CreateProfile(ctx, &users.Profile{UserID: userID, TotalPoints: totalPoints}); err != nil {
			return persistence("create profile", err)
		}
		return nil
	}
	if err != nil {
		return persistence("get profile", err)
	}
	if err := profiles.UpdateProfileTotalPoints(ctx, userID, totalPoints); err != nil {
		return persistence("update profile", err)
	}
	return nil
}

func outcomeOf(report *ScoreReport, err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrNoVerifiedResults):
		return metrics.OutcomeNoVerifiedResults
	case err != nil:
		return metrics.OutcomeFailed
	case report.NothingToScore:
		return metrics.OutcomeNothingToScore
	default:
		return metrics.OutcomeScored
	}
}
