package pool

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Participant is a real-world competitor. Inactive participants stay
// scoreable but can't be picked in new predictions.
type Participant struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Number      int       `db:"number" json:"number"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Team        string    `db:"team" json:"team"`
	Nationality string    `db:"nationality" json:"nationality"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

func (p *Participant) String() string {
	return fmt.Sprintf("#%d %s %s (%s)", p.Number, p.FirstName, p.LastName, p.Team)
}
