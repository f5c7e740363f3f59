package store

import (
	"context"

	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type StandingStore struct {
	q sqlx.ExtContext
}

func NewStandingStore(db *sqlx.DB) *StandingStore {
	return &StandingStore{q: db}
}

const (
	createStandingQuery = `
		INSERT INTO standings (id, competition_id, user_id, total_points, rank, events_predicted, exact_predictions, partial_predictions, updated_at)
		VALUES (:id, :competition_id, :user_id, :total_points, :rank, :events_predicted, :exact_predictions, :partial_predictions, :updated_at)
	`
	updateStandingTotalsQuery = `
		UPDATE standings SET
		total_points = :total_points,
		events_predicted = :events_predicted,
		exact_predictions = :exact_predictions,
		partial_predictions = :partial_predictions,
		updated_at = :updated_at
		WHERE id = :id
	`
	listStandingEntriesQuery = `
		SELECT s.*, u.email, u.username FROM standings s
		JOIN users u ON u.id = s.user_id
		WHERE s.competition_id = ?
		ORDER BY s.rank ASC, u.email ASC
	`
)

func (s *StandingStore) GetStanding(ctx context.Context, competitionID, userID uuid.UUID) (*pool.Standing, error) {
	var standing pool.Standing
	err := sqlx.GetContext(ctx, s.q, &standing, s.q.Rebind("SELECT * FROM standings WHERE competition_id = ? AND user_id = ?"), competitionID, userID)
	if err != nil {
		return nil, err
	}
	return &standing, nil
}

func (s *StandingStore) CreateStanding(ctx context.Context, standing *pool.Standing) error {
	stampIfZero(&standing.UpdatedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, createStandingQuery, standing)
	return err
}

// UpdateStandingTotals writes the aggregate columns and leaves rank alone.
func (s *StandingStore) UpdateStandingTotals(ctx context.Context, standing *pool.Standing) error {
	standing.UpdatedAt = now()
	_, err := sqlx.NamedExecContext(ctx, s.q, updateStandingTotalsQuery, standing)
	return err
}

func (s *StandingStore) UpdateStandingRank(ctx context.Context, id uuid.UUID, rank int) error {
	_, err := s.q.ExecContext(ctx, s.q.Rebind("UPDATE standings SET rank = ? WHERE id = ?"), rank, id)
	return err
}

// ListStandingEntries returns the leaderboard of a competition ordered by the
// currently stored rank.
func (s *StandingStore) ListStandingEntries(ctx context.Context, competitionID uuid.UUID) ([]pool.StandingEntry, error) {
	var entries []pool.StandingEntry
	err := sqlx.SelectContext(ctx, s.q, &entries, s.q.Rebind(listStandingEntriesQuery), competitionID)
	return entries, err
}
