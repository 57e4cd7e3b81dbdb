// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retry bounds transient failures with a fixed-delay retry policy.
// Validation skips are not errors and never pass through here; only
// operations that can fail transiently (a busy database, a momentarily
// locked file) are candidates.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// ProcessingError is the terminal error after all attempts are exhausted.
// It wraps the last transient cause and records how many attempts were made.
type ProcessingError struct {
	// Attempts is the total number of tries, including the first.
	Attempts int

	// Err is the last underlying cause.
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// transientError marks an error as retryable.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as retryable. Errors not wrapped by Transient
// propagate out of Do immediately, so schema and validation failures are
// never masked by retries.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err carries the Transient marker.
func IsTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// Do runs op up to attempts times, waiting delay between tries. Only
// errors marked with Transient are retried; anything else is returned
// as-is on the first occurrence. When every attempt fails transiently the
// result is a ProcessingError wrapping the last cause.
func Do(ctx context.Context, attempts int, delay time.Duration, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	tried := 0
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(nonZero(delay)))

	err := retry.Do(ctx, backoff, func(context.Context) error {
		tried++
		if err := op(); err != nil {
			if IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		var te *transientError
		errors.As(err, &te)
		return &ProcessingError{Attempts: tried, Err: te.err}
	}
	return err
}

// nonZero keeps the backoff constructor happy; go-retry rejects a zero
// interval.
func nonZero(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Nanosecond
	}
	return d
}
