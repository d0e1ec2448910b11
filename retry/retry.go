// Package retry implements a bounded retry policy with pluggable backoff
// and a retryable-error predicate.
package retry

import (
	"context"
	"time"
)

// Linear returns a backoff of attempt × step. Attempts are 1-based, so the
// wait after the first failure is step, after the second 2×step.
func Linear(step time.Duration) func(attempt int) time.Duration {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}

		return time.Duration(attempt) * step
	}
}

// Policy retries an operation up to MaxAttempts times, sleeping
// Backoff(attempt) between attempts, as long as Retryable reports the
// error as transient. A nil Retryable retries everything.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
	Retryable   func(err error) bool

	// Sleep overrides how the policy waits between attempts. Nil waits on
	// real time; tests inject a recorder.
	Sleep func(ctx context.Context, d time.Duration) error
}

func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = wait
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}

		if attempt == attempts {
			break
		}

		var d time.Duration
		if p.Backoff != nil {
			d = p.Backoff(attempt)
		}

		if werr := sleep(ctx, d); werr != nil {
			return werr
		}
	}

	return err
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
