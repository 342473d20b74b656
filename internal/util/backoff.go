// ABOUTME: Retry backoff schedule shared by the embedding and completion clients
// ABOUTME: Fixed exponential delays (1s, 2s, 4s for the default base), no jitter
package util

import "time"

// Backoff returns the delay to sleep after the nth failed attempt (1-based).
// The base delay doubles with each failure: base, 2*base, 4*base, ...
// Deterministic so tests can assert the exact schedule with a fake sleeper.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap the shift to avoid overflow on absurd attempt counts
	if attempt > 30 {
		attempt = 30
	}
	backoff := base << uint(attempt-1)
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}

// Sleeper pauses the calling goroutine. Production code passes time.Sleep;
// tests substitute a recorder so retry loops finish instantly.
type Sleeper func(time.Duration)
