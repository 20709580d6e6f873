// Package retry re-runs read-only store operations that failed with a
// retryable StoreError. Write operations must never go through it.
package retry

import (
	"context"
	"time"

	"loadboard/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultAttempts is the total number of tries, including the first.
	DefaultAttempts = 3

	defaultInitialInterval = 50 * time.Millisecond
	defaultMaxInterval     = 500 * time.Millisecond
)

// Policy bounds how a read is retried.
type Policy struct {
	Attempts        int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy retries a read up to DefaultAttempts times with exponential backoff.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:        DefaultAttempts,
		InitialInterval: defaultInitialInterval,
		MaxInterval:     defaultMaxInterval,
	}
}

// Read runs op until it succeeds, fails with a non-retryable error,
// the attempts are exhausted or ctx is done.
func Read[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialInterval
	eb.MaxInterval = p.MaxInterval
	eb.MaxElapsedTime = 0

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(p.Attempts-1)), ctx)

	return backoff.RetryWithData(func() (T, error) {
		res, err := op(ctx)
		if err != nil && !errs.IsRetryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, b)
}
