package bench

import (
	"context"
	"time"

	infraconfig "projects-service/internal/infrastructure/config"

	"github.com/cenkalti/backoff/v4"
)

// retry calls fn with exponential backoff until it succeeds, ctx ends or
// maxElapsed passes. A non-positive maxElapsed means DefaultConnectRetry.
func retry(ctx context.Context, maxElapsed time.Duration, fn func() error) error {
	if maxElapsed <= 0 {
		maxElapsed = infraconfig.DefaultConnectRetry
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = maxElapsed
	return backoff.Retry(fn, backoff.WithContext(b, ctx))
}
