package ratelimit

import (
	"fmt"
	"time"
)

// Decision represents the result of a rate limit check, with the metadata
// clients need to populate rate limit response headers.
type Decision struct {
	// Key is the identifier the check ran against (IP address, client key).
	Key string

	// Limiter is the name of the limiter that made this decision.
	Limiter string

	// Allowed indicates whether the request should be permitted.
	Allowed bool

	// Burst is the bucket capacity of the limiter.
	Burst int

	// Remaining is the number of whole tokens left after this check.
	Remaining int

	// RetryAfter is how long the client should wait before retrying.
	// Zero when allowed.
	RetryAfter time.Duration

	// ResetAt is when the next token becomes available.
	ResetAt time.Time
}

// String returns a human-readable representation of the decision.
func (d Decision) String() string {
	if d.Allowed {
		return fmt.Sprintf("Decision{Allowed, key=%s, limiter=%s, remaining=%d/%d}",
			d.Key, d.Limiter, d.Remaining, d.Burst)
	}
	return fmt.Sprintf("Decision{Denied, key=%s, limiter=%s, retry_after=%s}",
		d.Key, d.Limiter, d.RetryAfter)
}

// RetryAfterSeconds returns the retry delay in whole seconds, rounded up
// so a Retry-After header never tells the client to retry too early.
func (d Decision) RetryAfterSeconds() int64 {
	if d.RetryAfter <= 0 {
		return 0
	}
	secs := int64(d.RetryAfter / time.Second)
	if d.RetryAfter%time.Second != 0 {
		secs++
	}
	return secs
}
