package pool

import (
	"time"

	"github.com/google/uuid"
)

// Standing is a leaderboard row. It is derived from scored predictions and
// rewritten wholesale whenever an event of the competition is scored.
type Standing struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	CompetitionID      uuid.UUID `db:"competition_id" json:"competition_id"`
	UserID             uuid.UUID `db:"user_id" json:"user_id"`
	TotalPoints        int       `db:"total_points" json:"total_points"`
	Rank               int       `db:"rank" json:"rank"`
	EventsPredicted    int       `db:"events_predicted" json:"events_predicted"`
	ExactPredictions   int       `db:"exact_predictions" json:"exact_predictions"`
	PartialPredictions int       `db:"partial_predictions" json:"partial_predictions"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// StandingEntry is a standing joined with the identity of its user
type StandingEntry struct {
	Standing
	Email    string `db:"email" json:"email"`
	Username string `db:"username" json:"username"`
}
