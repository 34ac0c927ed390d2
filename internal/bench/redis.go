package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisstore "projects-service/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
)

const projectStatsPayload = `{"tasks_open":15,"budget_used":45000.00}`

// Redis pushes the dataset into per-project lists and runs the dashboard
// cache-aside scenario.
type Redis struct {
	Addr           string
	Client         *redis.Client // dialed from Addr when nil
	CacheTTL       time.Duration
	ComputeDelay   time.Duration
	ConnectTimeout time.Duration
}

func (r *Redis) Name() string { return "Redis" }

func activityKey(projectID int) string { return fmt.Sprintf("project:%d:activity", projectID) }

type activityEntry struct {
	UserID    int             `json:"user_id"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r *Redis) Run(ctx context.Context, run *Run) error {
	cli := r.Client
	if cli == nil {
		err := retry(ctx, r.ConnectTimeout, func() error {
			c, err := redisstore.Dial(ctx, r.Addr, "", 0)
			if err != nil {
				return err
			}
			cli = c
			return nil
		})
		if err != nil {
			return err
		}
		defer cli.Close()
	}

	keys := map[string]struct{}{activityKey(run.ProjectID): {}}
	for _, l := range run.Logs {
		keys[activityKey(l.ProjectID)] = struct{}{}
	}
	reset := cli.Pipeline()
	for k := range keys {
		reset.Del(ctx, k)
	}
	if _, err := reset.Exec(ctx); err != nil {
		return fmt.Errorf("clear lists: %w", err)
	}

	took, err := run.Measure.Time("redis.pipeline_push", func() error {
		pipe := cli.Pipeline()
		for _, l := range run.Logs {
			b, err := json.Marshal(activityEntry{UserID: l.UserID, Action: l.ActionType, Details: json.RawMessage(l.DetailsPayload), CreatedAt: l.Timestamp})
			if err != nil {
				return err
			}
			pipe.RPush(ctx, activityKey(l.ProjectID), b)
		}
		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("pipeline push: %w", err)
	}
	run.Report.Logf("[INSERT] pushed %d entries: %d ms", len(run.Logs), took.Milliseconds())

	var found int64
	took, err = run.Measure.Time("redis.lrange", func() error {
		vals, err := cli.LRange(ctx, activityKey(run.ProjectID), 0, -1).Result()
		found = int64(len(vals))
		return err
	})
	if err != nil {
		return fmt.Errorf("lrange: %w", err)
	}
	run.Report.Logf("[LRANGE] project_id=%d: %d ms (found %d)", run.ProjectID, took.Milliseconds(), found)

	return r.dashboard(ctx, cli, run)
}

func (r *Redis) dashboard(ctx context.Context, cli *redis.Client, run *Run) error {
	cache := redisstore.NewStatsCache(cli, r.CacheTTL)
	key := redisstore.ProjectStatsKey(run.ProjectID)
	compute := func(ctx context.Context) (string, error) {
		run.Report.Logf("Cache MISS. Running heavy computation...")
		select {
		case <-time.After(r.ComputeDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		return projectStatsPayload, nil
	}

	run.Report.Logf("Scenario: project stats for the dashboard.")
	if err := cache.Invalidate(ctx, key); err != nil {
		return fmt.Errorf("reset stats cache: %w", err)
	}
	var hit bool
	took, err := run.Measure.Time("redis.cache_first", func() error {
		var err error
		_, hit, err = cache.GetOrCompute(ctx, key, compute)
		return err
	})
	if err != nil {
		return fmt.Errorf("cache-aside: %w", err)
	}
	if !hit {
		run.Report.Logf("Stored in Redis with TTL %s (%d ms).", r.CacheTTL, took.Milliseconds())
	}

	var data string
	took, err = run.Measure.Time("redis.cache_hit", func() error {
		var err error
		data, err = cli.Get(ctx, key).Result()
		return err
	})
	if err != nil {
		return fmt.Errorf("cache hit: %w", err)
	}
	run.Report.Logf("Cache HIT. Data: %s", data)
	run.Report.Logf("Redis access time: %d us", took.Microseconds())
	return nil
}
