// Package scoring holds the point rules of the pool and the standings
// arithmetic. It does no I/O; callers load rows and persist the outcome.
package scoring

import (
	"sort"
	"strings"

	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/google/uuid"
)

// PartialCreditCutoff is the worst finishing position that still earns
// partial credit for a participant predicted at the wrong position.
const PartialCreditCutoff = 10

type Outcome int

const (
	Miss Outcome = iota
	Exact
	Partial
)

func (o Outcome) String() string {
	switch o {
	case Exact:
		return "exact"
	case Partial:
		return "partial"
	default:
		return "miss"
	}
}

type Rules struct {
	ExactPositionPoints      int
	CorrectParticipantPoints int
}

func RulesFor(c *pool.Competition) Rules {
	return Rules{
		ExactPositionPoints:      c.ExactPositionPoints,
		CorrectParticipantPoints: c.CorrectParticipantPoints,
	}
}

// Positions maps participant to actual finishing position. Unverified
// results are skipped.
func Positions(results []pool.Result) map[uuid.UUID]int {
	positions := make(map[uuid.UUID]int, len(results))
	for _, r := range results {
		if !r.Verified {
			continue
		}
		positions[r.ParticipantID] = r.Position
	}
	return positions
}

// Score awards points for a single prediction against the actual positions.
func (r Rules) Score(p *pool.Prediction, positions map[uuid.UUID]int) (int, Outcome) {
	actual, ok := positions[p.ParticipantID]
	if !ok {
		return 0, Miss
	}
	if actual == p.PredictedPosition {
		return r.ExactPositionPoints, Exact
	}
	if actual <= PartialCreditCutoff {
		return r.CorrectParticipantPoints, Partial
	}
	return 0, Miss
}

// Tally is the per-user aggregate a standing is built from.
type Tally struct {
	UserID             uuid.UUID
	TotalPoints        int
	EventsPredicted    int
	ExactPredictions   int
	PartialPredictions int
}

// TallyPredictions aggregates every prediction of a competition by user.
// Unscored predictions only count towards EventsPredicted. A scored
// prediction is counted as exact or partial by comparing its points with the
// tier values, so equal tier values count it in both. The result is ordered
// by user ID.
func TallyPredictions(rules Rules, predictions []pool.Prediction) []Tally {
	byUser := make(map[uuid.UUID]*Tally)
	events := make(map[uuid.UUID]map[uuid.UUID]struct{})

	for _, p := range predictions {
		t, ok := byUser[p.UserID]
		if !ok {
			t = &Tally{UserID: p.UserID}
			byUser[p.UserID] = t
			events[p.UserID] = make(map[uuid.UUID]struct{})
		}
		events[p.UserID][p.EventID] = struct{}{}

		if !p.IsScored {
			continue
		}
		t.TotalPoints += p.PointsEarned
		if p.PointsEarned == rules.ExactPositionPoints {
			t.ExactPredictions++
		}
		if p.PointsEarned == rules.CorrectParticipantPoints {
			t.PartialPredictions++
		}
	}

	tallies := make([]Tally, 0, len(byUser))
	for userID, t := range byUser {
		t.EventsPredicted = len(events[userID])
		tallies = append(tallies, *t)
	}
	sort.Slice(tallies, func(i, j int) bool {
		return tallies[i].UserID.String() < tallies[j].UserID.String()
	})
	return tallies
}

// Rank orders entries by total points, highest first, breaking ties by
// email and then user ID, and assigns ranks 1..N in that order. Tied
// entries never share a rank.
func Rank(entries []pool.StandingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if c := strings.Compare(a.Email, b.Email); c != 0 {
			return c < 0
		}
		return a.UserID.String() < b.UserID.String()
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}
