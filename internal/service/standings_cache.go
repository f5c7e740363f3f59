package service

import (
	"context"
	"time"

	"github.com/AdamBeresnev/pitwall/internal/pool"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// StandingsCache keeps recently read leaderboards in memory. Entries expire
// after the TTL and are dropped as soon as the competition is rescored in
// this process.
type StandingsCache struct {
	competitions *CompetitionService
	cache        *cache.Cache
	ttl          time.Duration
}

func NewStandingsCache(competitions *CompetitionService, ttl time.Duration) *StandingsCache {
	return &StandingsCache{
		competitions: competitions,
		cache:        cache.New(ttl, ttl*2),
		ttl:          ttl,
	}
}

func (c *StandingsCache) Standings(ctx context.Context, competitionID uuid.UUID) ([]pool.StandingEntry, error) {
	if c.ttl <= 0 {
		return c.competitions.Standings(ctx, competitionID)
	}

	if cached, found := c.cache.Get(competitionID.String()); found {
		if entries, ok := cached.([]pool.StandingEntry); ok {
			return entries, nil
		}
	}

	entries, err := c.competitions.Standings(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	c.cache.Set(competitionID.String(), entries, c.ttl)
	return entries, nil
}

func (c *StandingsCache) Invalidate(competitionID uuid.UUID) {
	c.cache.Delete(competitionID.String())
}
