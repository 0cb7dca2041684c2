// Package retry provides a bounded retry-with-backoff combinator shared
// by the GitHub fetcher and the LLM client.
package retry

import (
	"context"
	"errors"
	"time"
)

// BackoffFunc returns how long to wait after a given zero-based attempt.
type BackoffFunc func(attempt int) time.Duration

// Exponential doubles the base delay on each attempt: base, 2*base, 4*base...
func Exponential(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base << uint(attempt)
	}
}

// None disables waiting between attempts.
func None() BackoffFunc {
	return func(int) time.Duration { return 0 }
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks an error as not worth retrying. Do returns it
// immediately, unwrapped.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs fn up to maxAttempts times, waiting backoff(attempt) between
// tries. It stops early on success, on a Permanent error, or when ctx is
// done. The last error is returned after exhaustion.
func Do(ctx context.Context, maxAttempts int, backoff BackoffFunc, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(lastErr, &perm) {
			return perm.err
		}

		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}
	}
	return lastErr
}
