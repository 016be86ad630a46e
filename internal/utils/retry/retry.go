// Package retry provides a small bounded retry executor.
package retry

import (
	"context"
	"time"
)

// Policy defines how many additional attempts are made after the first
// failure and how long to wait between them.
type Policy struct {
	MaxRetries int
	Delay      time.Duration
}

// NoRetryPolicy returns a policy that never retries.
func NoRetryPolicy() Policy {
	return Policy{MaxRetries: 0}
}

// ExecuteWithResult runs fn up to 1+MaxRetries times. A retry only happens
// when shouldRetry reports the error as transient; all other errors are
// returned immediately. Context cancellation aborts both the call and any
// pending delay.
func ExecuteWithResult[T any](ctx context.Context, policy Policy, fn func(ctx context.Context, attempt int) (T, error), shouldRetry func(error) bool) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn(ctx, attempt)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt >= policy.MaxRetries || (shouldRetry != nil && !shouldRetry(err)) {
			break
		}

		if policy.Delay > 0 {
			timer := time.NewTimer(policy.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return zero, lastErr
}
