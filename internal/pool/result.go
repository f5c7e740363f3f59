package pool

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinResultPosition = 1
	MaxResultPosition = 22
)

// Result is the actual finishing position of a participant in an event.
// Only verified results take part in scoring.
type Result struct {
	ID            uuid.UUID `db:"id" json:"id"`
	EventID       uuid.UUID `db:"event_id" json:"event_id"`
	ParticipantID uuid.UUID `db:"participant_id" json:"participant_id"`
	Position      int       `db:"position" json:"position"`
	GridPosition  *int      `db:"grid_position" json:"grid_position,omitempty"`
	FastestLap    bool      `db:"fastest_lap" json:"fastest_lap"`
	DidNotFinish  bool      `db:"did_not_finish" json:"did_not_finish"`
	DNFReason     *string   `db:"dnf_reason" json:"dnf_reason,omitempty"`
	Verified      bool      `db:"verified" json:"verified"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
