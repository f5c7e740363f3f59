package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/AdamBeresnev/pitwall/internal/store"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CompetitionService struct {
	db     *sqlx.DB
	stores *store.Stores
}

func NewCompetitionService(db *sqlx.DB, stores *store.Stores) *CompetitionService {
	return &CompetitionService{db: db, stores: stores}
}

type JoinResult struct {
	AlreadyJoined bool
}

// Join adds the user to a published competition and seeds a zero standing
// so the user shows up on the leaderboard before the first scored event.
func (s *CompetitionService) Join(ctx context.Context, competitionID, userID uuid.UUID) (*JoinResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, persistence("begin transaction", err)
	}
	defer tx.Rollback()

	stores := s.stores.WithTx(tx)

	competition, err := stores.Competitions.GetCompetition(ctx, competitionID)
	if err != nil {
		return nil, lookup(err, "competition %s", competitionID)
	}
	if _, err := stores.Users.GetUser(ctx, userID); err != nil {
		return nil, lookup(err, "user %s", userID)
	}

	if !competition.IsOpenForJoining() {
		return nil, ErrCompetitionNotOpen
	}

	isMember, err := stores.Competitions.IsMember(ctx, competitionID, userID)
	if err != nil {
		return nil, persistence("check membership", err)
	}
	if isMember {
		return &JoinResult{AlreadyJoined: true}, nil
	}

	if err := stores.Competitions.AddMember(ctx, &pool.Member{CompetitionID: competitionID, UserID: userID}); err != nil {
		return nil, persistence("add member", err)
	}

	_, err = stores.Standings.GetStanding(ctx, competitionID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		standing := &pool.Standing{ID: uuid.New(), CompetitionID: competitionID, UserID: userID}
		if err := stores.Standings.CreateStanding(ctx, standing); err != nil {
			return nil, persistence("create standing", err)
		}
	} else if err != nil {
		return nil, persistence("get standing", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistence("commit join", err)
	}
	return &JoinResult{}, nil
}

// Standings returns the leaderboard of the competition ordered by rank.
func (s *CompetitionService) Standings(ctx context.Context, competitionID uuid.UUID) ([]pool.StandingEntry, error) {
	if _, err := s.stores.Competitions.GetCompetition(ctx, competitionID); err != nil {
		return nil, lookup(err, "competition %s", competitionID)
	}

	entries, err := s.stores.Standings.ListStandingEntries(ctx, competitionID)
	if err != nil {
		return nil, persistence("list standings", err)
	}
	return entries, nil
}
