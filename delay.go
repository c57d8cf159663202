package rebel

import (
	"context"
	"math"
	"time"
)

// DelayFunc returns how long to wait after a failed attempt. Attempts count from 0.
type DelayFunc func(attempt int) time.Duration

// Fixed returns a DelayFunc that waits delay after every attempt.
func Fixed(delay time.Duration) DelayFunc {
	return func(int) time.Duration {
		return delay
	}
}

// Exponential returns a DelayFunc that doubles delay after every attempt, capped at maxDelay.
//
// With delay 200ms and maxDelay 2s the waits are 200ms, 400ms, 800ms, 1.6s, 2s, 2s...
func Exponential(delay time.Duration, maxDelay time.Duration) DelayFunc {
	// shifting past 62 bits overflows time.Duration
	var maxShifts uint
	if logDelay := math.Floor(math.Log2(float64(delay))); logDelay < 62 {
		maxShifts = 62 - uint(logDelay)
	}

	return func(attempt int) time.Duration {
		if attempt <= 0 {
			return min(delay, maxDelay)
		}
		// nolint:gosec
		shift := min(uint(attempt), maxShifts)
		return min(delay<<shift, maxDelay)
	}
}

// retry calls fn until it succeeds or attempts calls have failed, waiting delayFunc between
// calls. onRetry is told about each failure that will be retried.
func retry(ctx context.Context, attempts int, delayFunc DelayFunc, fn func() error, onRetry func(attempt int, wait time.Duration, err error)) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || attempt+1 >= attempts {
			return err
		}

		wait := delayFunc(attempt)
		onRetry(attempt, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
