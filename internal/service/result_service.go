package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/AdamBeresnev/pitwall/internal/store"
	"github.com/AdamBeresnev/pitwall/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ResultService struct {
	db       *sqlx.DB
	stores   *store.Stores
	validate *validator.Validate
}

func NewResultService(db *sqlx.DB, stores *store.Stores) *ResultService {
	return &ResultService{db: db, stores: stores, validate: validator.New()}
}

type ResultInput struct {
	ParticipantID uuid.UUID `validate:"required"`
	Position      int       `validate:"min=1,max=22"`
	GridPosition  *int      `validate:"omitempty,min=1"`
	FastestLap    bool
	DidNotFinish  bool
	DNFReason     string `validate:"max=200"`
}

// Record creates or replaces results of the event. Recorded results are
// unverified until Verify is called, including ones that were verified before.
func (s *ResultService) Record(ctx context.Context, eventID uuid.UUID, inputs []ResultInput) ([]pool.Result, error) {
	if err := s.validate.Var(inputs, "min=1,dive"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, persistence("begin transaction", err)
	}
	defer tx.Rollback()

	stores := s.stores.WithTx(tx)

	if _, err := stores.Competitions.GetEvent(ctx, eventID); err != nil {
		return nil, lookup(err, "event %s", eventID)
	}

	recorded := make([]pool.Result, 0, len(inputs))
	for _, input := range inputs {
		if _, err := stores.Competitions.GetParticipant(ctx, input.ParticipantID); err != nil {
			return nil, lookup(err, "participant %s", input.ParticipantID)
		}

		result, err := stores.Predictions.GetResult(ctx, eventID, input.ParticipantID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			result = &pool.Result{ID: uuid.New(), EventID: eventID, ParticipantID: input.ParticipantID}
			applyResultInput(result, input)
			if err := stores.Predictions.CreateResult(ctx, result); err != nil {
				return nil, persistence("create result", err)
			}
		case err != nil:
			return nil, persistence("get result", err)
		default:
			applyResultInput(result, input)
			if err := stores.Predictions.UpdateResult(ctx, result); err != nil {
				return nil, persistence("update result", err)
			}
		}
		recorded = append(recorded, *result)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistence("commit results", err)
	}
	return recorded, nil
}

func applyResultInput(result *pool.Result, input ResultInput) {
	result.Position = input.Position
	result.GridPosition = input.GridPosition
	result.FastestLap = input.FastestLap
	result.DidNotFinish = input.DidNotFinish
	result.DNFReason = utils.StringOrNil(input.DNFReason)
	result.Verified = false
}

// Verify marks every unverified result of the event as verified and returns
// how many were flipped.
func (s *ResultService) Verify(ctx context.Context, eventID uuid.UUID) (int64, error) {
	if _, err := s.stores.Competitions.GetEvent(ctx, eventID); err != nil {
		return 0, lookup(err, "event %s", eventID)
	}

	count, err := s.stores.Predictions.VerifyResults(ctx, eventID)
	if err != nil {
		return 0, persistence("verify results", err)
	}
	return count, nil
}
