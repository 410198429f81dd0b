// Package retry runs startup connection attempts with exponential backoff.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// BaseDelay is the wait after the first failed attempt; it doubles after each further failure.
var BaseDelay = time.Second

// Do calls fn until it succeeds, ctx is done, or attempts are exhausted.
// With the default BaseDelay the waits are 1s, 2s, 4s, 8s ...
// At least one attempt is always made.
func Do(ctx context.Context, target string, attempts int, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts-1 {
			break
		}

		backoff := BaseDelay * time.Duration(1<<attempt)
		log.Warn().
			Err(err).
			Str("target", target).
			Int("attempt", attempt+1).
			Int("max_retries", attempts).
			Dur("next_retry_in", backoff).
			Msg("connection failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("failed to connect to %s after %d attempts: %w", target, attempts, err)
}
