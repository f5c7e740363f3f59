package pool

import (
	"time"

	"github.com/google/uuid"
)

type PredictionTypeCode string

const (
	TypeTopTen     PredictionTypeCode = "top10"
	TypePodium     PredictionTypeCode = "podium"
	TypeWinner     PredictionTypeCode = "winner"
	TypePole       PredictionTypeCode = "pole"
	TypeFastestLap PredictionTypeCode = "fastest_lap"
	TypeDNF        PredictionTypeCode = "dnf"
)

const (
	MinPredictedPosition = 1
	MaxPredictedPosition = 20
)

type PredictionType struct {
	ID                uuid.UUID          `db:"id" json:"id"`
	Code              PredictionTypeCode `db:"code" json:"code"`
	Name              string             `db:"name" json:"name"`
	Description       string             `db:"description" json:"description"`
	IsActive          bool               `db:"is_active" json:"is_active"`
	RequiresPositions bool               `db:"requires_positions" json:"requires_positions"`
	MaxSelections     int                `db:"max_selections" json:"max_selections"`
}

// Prediction is one user's pick of a participant for a finishing position.
// PointsEarned is only meaningful once IsScored is set.
type Prediction struct {
	ID                uuid.UUID `db:"id" json:"id"`
	UserID            uuid.UUID `db:"user_id" json:"user_id"`
	EventID           uuid.UUID `db:"event_id" json:"event_id"`
	PredictionTypeID  uuid.UUID `db:"prediction_type_id" json:"prediction_type_id"`
	ParticipantID     uuid.UUID `db:"participant_id" json:"participant_id"`
	PredictedPosition int       `db:"predicted_position" json:"predicted_position"`
	PointsEarned      int       `db:"points_earned" json:"points_earned"`
	IsScored          bool      `db:"is_scored" json:"is_scored"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
