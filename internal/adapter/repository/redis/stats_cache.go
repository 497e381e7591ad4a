package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manav-coupa/store-management/internal/domain"
)

const statsKey = "stats:dashboard"

// StatsCache implements usecase.StatsCache using Redis. Cached stats are
// invalidated on every ledger mutation, so a stale entry only survives
// until the next write.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new StatsCache.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves cached dashboard stats. The second return value reports
// whether an entry was present.
func (c *StatsCache) Get(ctx context.Context) (*domain.DashboardStats, bool, error) {
	data, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false, err
	}

	return &stats, true, nil
}

// Set stores dashboard stats with the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats *domain.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, statsKey, data, c.ttl).Err()
}

// Invalidate drops the cached entry.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, statsKey).Err()
}
