package database

import (
	"context"
	"time"

	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
)

// Retry calls connect up to attempts times with exponential backoff starting at backoff.
// It tolerates databases that come up after the service during container startup.
func Retry[T any](ctx context.Context, name string, attempts int, backoff time.Duration, connect func(context.Context) (T, error)) (T, error) {
	var zero T
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var v T
		v, err = connect(ctx)
		if err == nil {
			return v, nil
		}
		logger.Warnf("attempt %d/%d: failed to connect to %s: %v", attempt, attempts, name, err)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return zero, err
}
