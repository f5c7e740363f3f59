package store

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// Stores groups the stores that share one handle. The handle is either the
// database itself or a transaction, see WithTx.
type Stores struct {
	Competitions *CompetitionStore
	Predictions  *PredictionStore
	Standings    *StandingStore
	Users        *UserStore
}

func New(db *sqlx.DB) *Stores {
	return newStores(db)
}

// WithTx returns stores that run every query inside tx.
func (s *Stores) WithTx(tx *sqlx.Tx) *Stores {
	return newStores(tx)
}

func newStores(q sqlx.ExtContext) *Stores {
	return &Stores{
		Competitions: &CompetitionStore{q: q},
		Predictions:  &PredictionStore{q: q},
		Standings:    &StandingStore{q: q},
		Users:        &UserStore{q: q},
	}
}

func now() time.Time {
	return time.Now().UTC()
}

func stampIfZero(t *time.Time) {
	if t.IsZero() {
		*t = now()
	}
}
