package store

import (
	"context"

	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// PredictionStore covers predictions and the results they are scored against.
type PredictionStore struct {
	q sqlx.ExtContext
}

func NewPredictionStore(db *sqlx.DB) *PredictionStore {
	return &PredictionStore{q: db}
}

const (
	createPredictionQuery = `
		INSERT INTO predictions (id, user_id, event_id, prediction_type_id, participant_id, predicted_position, points_earned, is_scored, created_at, updated_at)
		VALUES (:id, :user_id, :event_id, :prediction_type_id, :participant_id, :predicted_position, :points_earned, :is_scored, :created_at, :updated_at)
	`
	listCompetitionPredictionsQuery = `
		SELECT p.* FROM predictions p
		JOIN events e ON e.id = p.event_id
		WHERE e.competition_id = ?
		ORDER BY p.user_id ASC, e.round_number ASC, p.predicted_position ASC
	`
	createResultQuery = `
		INSERT INTO results (id, event_id, participant_id, position, grid_position, fastest_lap, did_not_finish, dnf_reason, verified, created_at, updated_at)
		VALUES (:id, :event_id, :participant_id, :position, :grid_position, :fastest_lap, :did_not_finish, :dnf_reason, :verified, :created_at, :updated_at)
	`
	updateResultQuery = `
		UPDATE results SET
		position = :position,
		grid_position = :grid_position,
		fastest_lap = :fastest_lap,
		did_not_finish = :did_not_finish,
		dnf_reason = :dnf_reason,
		verified = :verified,
		updated_at = :updated_at
		WHERE id = :id
	`
)

func (s *PredictionStore) CreatePrediction(ctx context.Context, prediction *pool.Prediction) error {
	stampIfZero(&prediction.CreatedAt)
	stampIfZero(&prediction.UpdatedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, createPredictionQuery, prediction)
	return err
}

func (s *PredictionStore) GetPrediction(ctx context.Context, id uuid.UUID) (*pool.Prediction, error) {
	var prediction pool.Prediction
	err := sqlx.GetContext(ctx, s.q, &prediction, s.q.Rebind("SELECT * FROM predictions WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &prediction, nil
}

// DeletePredictions removes the predictions of one user for an event and type
func (s *PredictionStore) DeletePredictions(ctx context.Context, userID, eventID, predictionTypeID uuid.UUID) error {
	_, err := s.q.ExecContext(ctx, s.q.Rebind("DELETE FROM predictions WHERE user_id = ? AND event_id = ? AND prediction_type_id = ?"), userID, eventID, predictionTypeID)
	return err
}

func (s *PredictionStore) ListEventPredictions(ctx context.Context, eventID uuid.UUID) ([]pool.Prediction, error) {
	var predictions []pool.Prediction
	err := sqlx.SelectContext(ctx, s.q, &predictions, s.q.Rebind("SELECT * FROM predictions WHERE event_id = ? ORDER BY user_id ASC, predicted_position ASC"), eventID)
	return predictions, err
}

func (s *PredictionStore) ListUnscoredPredictions(ctx context.Context, eventID uuid.UUID) ([]pool.Prediction, error) {
	var predictions []pool.Prediction
	err := sqlx.SelectContext(ctx, s.q, &predictions, s.q.Rebind("SELECT * FROM predictions WHERE event_id = ? AND is_scored = ? ORDER BY user_id ASC, predicted_position ASC"), eventID, false)
	return predictions, err
}

// ListCompetitionPredictions returns every prediction, scored or not, placed
// on any event of the competition.
func (s *PredictionStore) ListCompetitionPredictions(ctx context.Context, competitionID uuid.UUID) ([]pool.Prediction, error) {
	var predictions []pool.Prediction
	err := sqlx.SelectContext(ctx, s.q, &predictions, s.q.Rebind(listCompetitionPredictionsQuery), competitionID)
	return predictions, err
}

func (s *PredictionStore) MarkPredictionScored(ctx context.Context, id uuid.UUID, points int) error {
	_, err := s.q.ExecContext(ctx, s.q.Rebind("UPDATE predictions SET points_earned = ?, is_scored = ?, updated_at = ? WHERE id = ?"), points, true, now(), id)
	return err
}

// SumScoredPoints is the lifetime total of a user across all competitions.
func (s *PredictionStore) SumScoredPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, s.q, &total, s.q.Rebind("SELECT COALESCE(SUM(points_earned), 0) FROM predictions WHERE user_id = ? AND is_scored = ?"), userID, true)
	return total, err
}

func (s *PredictionStore) CreateResult(ctx context.Context, result *pool.Result) error {
	stampIfZero(&result.CreatedAt)
	stampIfZero(&result.UpdatedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, createResultQuery, result)
	return err
}

func (s *PredictionStore) UpdateResult(ctx context.Context, result *pool.Result) error {
	result.UpdatedAt = now()
	_, err := sqlx.NamedExecContext(ctx, s.q, updateResultQuery, result)
	return err
}

func (s *PredictionStore) GetResult(ctx context.Context, eventID, participantID uuid.UUID) (*pool.Result, error) {
	var result pool.Result
	err := sqlx.GetContext(ctx, s.q, &result, s.q.Rebind("SELECT * FROM results WHERE event_id = ? AND participant_id = ?"), eventID, participantID)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PredictionStore) ListResults(ctx context.Context, eventID uuid.UUID) ([]pool.Result, error) {
	var results []pool.Result
	err := sqlx.SelectContext(ctx, s.q, &results, s.q.Rebind("SELECT * FROM results WHERE event_id = ? ORDER BY position ASC"), eventID)
	return results, err
}

func (s *PredictionStore) ListVerifiedResults(ctx context.Context, eventID uuid.UUID) ([]pool.Result, error) {
	var results []pool.Result
	err := sqlx.SelectContext(ctx, s.q, &results, s.q.Rebind("SELECT * FROM results WHERE event_id = ? AND verified = ? ORDER BY position ASC"), eventID, true)
	return results, err
}

// VerifyResults flags every result of the event as verified and returns how
// many rows changed.
func (s *PredictionStore) VerifyResults(ctx context.Context, eventID uuid.UUID) (int64, error) {
	res, err := s.q.ExecContext(ctx, s.q.Rebind("UPDATE results SET verified = ?, updated_at = ? WHERE event_id = ? AND verified = ?"), true, now(), eventID, false)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
