package pool

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventScheduled     EventStatus = "scheduled"
	EventBettingOpen   EventStatus = "betting_open"
	EventBettingClosed EventStatus = "betting_closed"
	EventInProgress    EventStatus = "in_progress"
	EventCompleted     EventStatus = "completed"
	EventCancelled     EventStatus = "cancelled"
)

type Event struct {
	ID            uuid.UUID `db:"id" json:"id"`
	CompetitionID uuid.UUID `db:"competition_id" json:"competition_id"`
	Name          string    `db:"name" json:"name"`
	Location      string    `db:"location" json:"location"`
	Country       string    `db:"country" json:"country"`
	// Round is unique within the competition
	RoundNumber        int         `db:"round_number" json:"round_number"`
	ScheduledAt        time.Time   `db:"scheduled_at" json:"scheduled_at"`
	PredictionDeadline time.Time   `db:"prediction_deadline" json:"prediction_deadline"`
	Status             EventStatus `db:"status" json:"status"`
	CreatedAt          time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at" json:"updated_at"`
}

// IsOpenForPredictions reports whether new predictions may still be placed at now.
func (e *Event) IsOpenForPredictions(now time.Time) bool {
	if !now.Before(e.PredictionDeadline) {
		return false
	}
	return e.Status == EventScheduled || e.Status == EventBettingOpen
}
