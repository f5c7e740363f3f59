package service

import (
	"sync"

	"github.com/google/uuid"
)

// competitionLocks serializes scoring work per competition within the process.
type competitionLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newCompetitionLocks() *competitionLocks {
	return &competitionLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// lock blocks until the competition is free and returns the matching unlock.
func (l *competitionLocks) lock(competitionID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[competitionID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[competitionID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
