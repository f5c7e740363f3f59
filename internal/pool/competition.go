package pool

import (
	"time"

	"github.com/google/uuid"
)

type CompetitionStatus string

const (
	CompetitionDraft     CompetitionStatus = "draft"
	CompetitionPublished CompetitionStatus = "published"
	CompetitionActive    CompetitionStatus = "active"
	CompetitionCompleted CompetitionStatus = "completed"
)

const (
	DefaultExactPositionPoints      = 10
	DefaultCorrectParticipantPoints = 5
)

// Competition is one season of the pool. The two point values are the
// scoring tiers applied to every event that belongs to it.
type Competition struct {
	ID                       uuid.UUID         `db:"id" json:"id"`
	Name                     string            `db:"name" json:"name"`
	Description              string            `db:"description" json:"description"`
	Year                     int               `db:"year" json:"year"`
	Status                   CompetitionStatus `db:"status" json:"status"`
	StartDate                time.Time         `db:"start_date" json:"start_date"`
	EndDate                  time.Time         `db:"end_date" json:"end_date"`
	ExactPositionPoints      int               `db:"exact_position_points" json:"exact_position_points"`
	CorrectParticipantPoints int               `db:"correct_participant_points" json:"correct_participant_points"`
	CreatedBy                uuid.UUID         `db:"created_by" json:"created_by"`
	CreatedAt                time.Time         `db:"created_at" json:"created_at"`
}

func (c *Competition) IsOpenForJoining() bool {
	return c.Status == CompetitionPublished
}

type Member struct {
	CompetitionID uuid.UUID `db:"competition_id"`
	UserID        uuid.UUID `db:"user_id"`
	JoinedAt      time.Time `db:"joined_at"`
}
