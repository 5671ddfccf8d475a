package remote

import (
	"context"
	"math/rand"
	"time"
)

// Default retry parameters for transient failures.
const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
	defaultMaxDelay    = 5 * time.Second
)

// RetryPolicy retries an operation a bounded number of times with
// exponential backoff and jitter. Whether a failure is retried at all is
// decided by the Retryable classifier, so the same policy is applied
// uniformly across every gateway call site.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Retryable   func(error) bool
}

// DefaultRetryPolicy returns the gateway's standard policy: 3 attempts,
// 1s base delay doubling up to a 5s cap, retrying network and server
// failures only.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaultMaxAttempts,
		BaseDelay:   defaultBaseDelay,
		MaxDelay:    defaultMaxDelay,
		Retryable:   IsRetryable,
	}
}

// Do invokes op until it succeeds, fails with a non-retryable error, or
// the attempt budget is exhausted. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		delay := p.BaseDelay << (attempt - 1)
		delay += time.Duration(rand.Int63n(int64(100 * time.Millisecond)))
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}
