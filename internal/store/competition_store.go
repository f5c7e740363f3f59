package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CompetitionStore covers competitions, their members and events, plus the
// participant and prediction type catalogues.
type CompetitionStore struct {
	q sqlx.ExtContext
}

func NewCompetitionStore(db *sqlx.DB) *CompetitionStore {
	return &CompetitionStore{q: db}
}

func (s *CompetitionStore) CreateCompetition(ctx context.Context, competition *pool.Competition) error {
	stampIfZero(&competition.CreatedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, `INSERT INTO competitions (id, name, description, year, status, start_date, end_date, exact_position_points, correct_participant_points, created_by, created_at)
		VALUES (:id, :name, :description, :year, :status, :start_date, :end_date, :exact_position_points, :correct_participant_points, :created_by, :created_at)`, competition)
	return err
}

func (s *CompetitionStore) GetCompetition(ctx context.Context, id uuid.UUID) (*pool.Competition, error) {
	var competition pool.Competition
	err := sqlx.GetContext(ctx, s.q, &competition, s.q.Rebind("SELECT * FROM competitions WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &competition, nil
}

func (s *CompetitionStore) UpdateCompetitionStatus(ctx context.Context, id uuid.UUID, status pool.CompetitionStatus) error {
	_, err := s.q.ExecContext(ctx, s.q.Rebind("UPDATE competitions SET status = ? WHERE id = ?"), status, id)
	return err
}

func (s *CompetitionStore) AddMember(ctx context.Context, member *pool.Member) error {
	stampIfZero(&member.JoinedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, `INSERT INTO competition_members (competition_id, user_id, joined_at)
		VALUES (:competition_id, :user_id, :joined_at)`, member)
	return err
}

func (s *CompetitionStore) IsMember(ctx context.Context, competitionID, userID uuid.UUID) (bool, error) {
	var one int
	err := sqlx.GetContext(ctx, s.q, &one, s.q.Rebind("SELECT 1 FROM competition_members WHERE competition_id = ? AND user_id = ?"), competitionID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (s *CompetitionStore) ListMembers(ctx context.Context, competitionID uuid.UUID) ([]pool.Member, error) {
	var members []pool.Member
	err := sqlx.SelectContext(ctx, s.q, &members, s.q.Rebind("SELECT * FROM competition_members WHERE competition_id = ? ORDER BY joined_at ASC"), competitionID)
	return members, err
}

func (s *CompetitionStore) CreateEvent(ctx context.Context, event *pool.Event) error {
	stampIfZero(&event.CreatedAt)
	stampIfZero(&event.UpdatedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, `INSERT INTO events (id, competition_id, name, location, country, round_number, scheduled_at, prediction_deadline, status, created_at, updated_at)
		VALUES (:id, :competition_id, :name, :location, :country, :round_number, :scheduled_at, :prediction_deadline, :status, :created_at, :updated_at)`, event)
	return err
}

func (s *CompetitionStore) GetEvent(ctx context.Context, id uuid.UUID) (*pool.Event, error) {
	var event pool.Event
	err := sqlx.GetContext(ctx, s.q, &event, s.q.Rebind("SELECT * FROM events WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *CompetitionStore) ListEvents(ctx context.Context, competitionID uuid.UUID) ([]pool.Event, error) {
	var events []pool.Event
	err := sqlx.SelectContext(ctx, s.q, &events, s.q.Rebind("SELECT * FROM events WHERE competition_id = ? ORDER BY round_number ASC"), competitionID)
	return events, err
}

func (s *CompetitionStore) UpdateEventStatus(ctx context.Context, id uuid.UUID, status pool.EventStatus) error {
	_, err := s.q.ExecContext(ctx, s.q.Rebind("UPDATE events SET status = ?, updated_at = ? WHERE id = ?"), status, now(), id)
	return err
}

func (s *CompetitionStore) CreateParticipant(ctx context.Context, participant *pool.Participant) error {
	stampIfZero(&participant.CreatedAt)
	_, err := sqlx.NamedExecContext(ctx, s.q, `INSERT INTO participants (id, number, first_name, last_name, team, nationality, is_active, created_at)
		VALUES (:id, :number, :first_name, :last_name, :team, :nationality, :is_active, :created_at)`, participant)
	return err
}

func (s *CompetitionStore) GetParticipant(ctx context.Context, id uuid.UUID) (*pool.Participant, error) {
	var participant pool.Participant
	err := sqlx.GetContext(ctx, s.q, &participant, s.q.Rebind("SELECT * FROM participants WHERE id = ?"), id)
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (s *CompetitionStore) ListActiveParticipants(ctx context.Context) ([]pool.Participant, error) {
	var participants []pool.Participant
	err := sqlx.SelectContext(ctx, s.q, &participants, s.q.Rebind("SELECT * FROM participants WHERE is_active = ? ORDER BY number ASC"), true)
	return participants, err
}

func (s *CompetitionStore) GetPredictionTypeByCode(ctx context.Context, code pool.PredictionTypeCode) (*pool.PredictionType, error) {
	var predictionType pool.PredictionType
	err := sqlx.GetContext(ctx, s.q, &predictionType, s.q.Rebind("SELECT * FROM prediction_types WHERE code = ?"), code)
	if err != nil {
		return nil, err
	}
	return &predictionType, nil
}
