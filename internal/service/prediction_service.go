package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/AdamBeresnev/pitwall/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PredictionService struct {
	db       *sqlx.DB
	stores   *store.Stores
	validate *validator.Validate
	now      func() time.Time
}

func NewPredictionService(db *sqlx.DB, stores *store.Stores) *PredictionService {
	return &PredictionService{
		db:       db,
		stores:   stores,
		validate: validator.New(),
		now:      time.Now,
	}
}

type Pick struct {
	ParticipantID uuid.UUID `validate:"required"`
	Position      int       `validate:"min=1,max=20"`
}

type PlacementInput struct {
	EventID  uuid.UUID               `validate:"required"`
	TypeCode pool.PredictionTypeCode `validate:"required"`
	Picks    []Pick                  `validate:"min=1,max=10,dive"`
}

// Place replaces the user's predictions for the event and prediction type
// with the given picks. Predictions are only accepted while the event is open.
func (s *PredictionService) Place(ctx context.Context, userID uuid.UUID, input PlacementInput) ([]pool.Prediction, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	if err := checkDistinctPicks(input.Picks); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, persistence("begin transaction", err)
	}
	defer tx.Rollback()

	stores := s.stores.WithTx(tx)

	event, err := stores.Competitions.GetEvent(ctx, input.EventID)
	if err != nil {
		return nil, lookup(err, "event %s", input.EventID)
	}
	if !event.IsOpenForPredictions(s.now()) {
		return nil, fmt.Errorf("%w: %s", ErrPredictionsClosed, event.Name)
	}

	predictionType, err := stores.Competitions.GetPredictionTypeByCode(ctx, input.TypeCode)
	if err != nil {
		return nil, lookup(err, "prediction type %s", input.TypeCode)
	}
	if !predictionType.IsActive {
		return nil, fmt.Errorf("%w: prediction type %s is not active", ErrValidationFailed, predictionType.Code)
	}
	if len(input.Picks) > predictionType.MaxSelections {
		return nil, fmt.Errorf("%w: %s allows at most %d picks", ErrValidationFailed, predictionType.Code, predictionType.MaxSelections)
	}

	for _, pick := range input.Picks {
		participant, err := stores.Competitions.GetParticipant(ctx, pick.ParticipantID)
		if err != nil {
			return nil, lookup(err, "participant %s", pick.ParticipantID)
		}
		if !participant.IsActive {
			return nil, fmt.Errorf("%w: participant %s is not active", ErrValidationFailed, participant)
		}
	}

	if err := stores.Predictions.DeletePredictions(ctx, userID, event.ID, predictionType.ID); err != nil {
		return nil, persistence("delete previous predictions", err)
	}

	predictions := make([]pool.Prediction, 0, len(input.Picks))
	for _, pick := range input.Picks {
		prediction := pool.Prediction{
			ID:                uuid.New(),
			UserID:            userID,
			EventID:           event.ID,
			PredictionTypeID:  predictionType.ID,
			ParticipantID:     pick.ParticipantID,
			PredictedPosition: pick.Position,
		}
		if err := stores.Predictions.CreatePrediction(ctx, &prediction); err != nil {
			return nil, persistence("create prediction", err)
		}
		predictions = append(predictions, prediction)
	}

	if err := tx.Commit(); err != nil {
		return nil, persistence("commit predictions", err)
	}
	return predictions, nil
}

func checkDistinctPicks(picks []Pick) error {
	positions := make(map[int]struct{}, len(picks))
	participants := make(map[uuid.UUID]struct{}, len(picks))
	for _, pick := range picks {
		if _, ok := positions[pick.Position]; ok {
			return fmt.Errorf("%w: position %d is duplicated", ErrValidationFailed, pick.Position)
		}
		if _, ok := participants[pick.ParticipantID]; ok {
			return fmt.Errorf("%w: participant %s is duplicated", ErrValidationFailed, pick.ParticipantID)
		}
		positions[pick.Position] = struct{}{}
		participants[pick.ParticipantID] = struct{}{}
	}
	return nil
}
