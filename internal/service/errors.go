package service

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced event, competition,
	// participant or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoVerifiedResults is returned when scoring is attempted before any
	// result of the event has been verified.
	ErrNoVerifiedResults = errors.New("no verified results")

	// ErrPersistence wraps store level failures. The driver error stays
	// reachable through errors.Is and errors.As.
	ErrPersistence = errors.New("persistence failure")

	ErrValidationFailed   = errors.New("validation failed")
	ErrPredictionsClosed  = errors.New("predictions are closed for this event")
	ErrCompetitionNotOpen = errors.New("competition is not open for joining")
)

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// lookup translates a failed single row read into ErrNotFound or ErrPersistence.
func lookup(err error, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return persistence("get "+what, err)
}
