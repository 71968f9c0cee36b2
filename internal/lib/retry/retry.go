package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Do calls fn up to attempts times, waiting delay (growing exponentially) between tries.
// It stops early when ctx is done or fn returns a backoff.Permanent error.
func Do(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = delay
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	return backoff.Retry(fn, backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx))
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
