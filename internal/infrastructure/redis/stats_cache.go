package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache is a cache-aside store for computed dashboard values.
type StatsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{Client: client, TTL: ttl}
}

// ProjectStatsKey is the cache key of a project's dashboard stats.
func ProjectStatsKey(projectID int) string { return fmt.Sprintf("project:%d:stats", projectID) }

// GetOrCompute returns the cached value for key. On a miss it calls compute,
// stores the result with the cache TTL and reports hit=false.
func (c *StatsCache) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (string, error)) (string, bool, error) {
	v, err := c.Client.Get(ctx, key).Result()
	if err == nil {
		return v, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", false, err
	}
	v, err = compute(ctx)
	if err != nil {
		return "", false, err
	}
	if err := c.Client.Set(ctx, key, v, c.TTL).Err(); err != nil {
		return "", false, err
	}
	return v, false, nil
}

func (c *StatsCache) Invalidate(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}
