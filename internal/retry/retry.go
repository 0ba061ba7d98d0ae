// Package retry provides a small retry policy with exponential backoff.
package retry

import (
	"context"
	"time"
)

// Policy retries a fallible operation with a doubling delay between
// attempts. No delay is inserted after the final attempt.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration

	// Sleep is called for each inter-attempt wait. Defaults to time.Sleep;
	// tests substitute a recorder so backoff timing is assertable without
	// real delays.
	Sleep func(time.Duration)
}

// Do runs op until it succeeds or MaxAttempts is exhausted, returning the
// last error. The context is checked before each attempt.
func (p Policy) Do(ctx context.Context, op func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	delay := p.InitialDelay
	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = op(); err == nil {
			return nil
		}
		if attempt < p.MaxAttempts-1 {
			sleep(delay)
			delay *= 2
		}
	}
	return err
}
