// Package ratelimit provides framework-agnostic, keyed rate limiting.
//
// A KeyedLimiter maintains one token bucket per key (IP address, client
// key, user ID) on top of golang.org/x/time/rate, with a bounded key set
// and pluggable metrics. It is reusable across contexts: the HTTP per-IP
// middleware and the download allowance both build on it.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Clock provides an abstraction for time operations to enable testing.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time { return time.Now() }

// Config configures a KeyedLimiter.
type Config struct {
	// Name identifies the limiter in metrics and logs (e.g. "ip", "download").
	Name string

	// Rate is the sustained refill rate in events per second.
	Rate rate.Limit

	// Burst is the bucket capacity: the number of events a fresh or fully
	// recovered key may spend at once.
	Burst int

	// MaxKeys bounds the number of tracked keys. When the cap is reached,
	// the least recently used key is evicted. Zero means 10000.
	MaxKeys int

	// IdleTTL is how long a key may go unused before Cleanup drops it.
	// Zero means 10 minutes.
	IdleTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "default"
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.MaxKeys <= 0 {
		c.MaxKeys = 10000
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 10 * time.Minute
	}
	return c
}

// entry is the per-key bucket with its access time for eviction.
type entry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// KeyedLimiter is a thread-safe set of per-key token buckets.
type KeyedLimiter struct {
	cfg     Config
	clock   Clock
	metrics Metrics

	mu      sync.Mutex
	entries map[string]*entry
}

// Option customizes a KeyedLimiter.
type Option func(*KeyedLimiter)

// WithClock injects a clock, used by tests to control time.
func WithClock(clock Clock) Option {
	return func(k *KeyedLimiter) { k.clock = clock }
}

// WithMetrics injects a metrics recorder. Defaults to NoopMetrics.
func WithMetrics(m Metrics) Option {
	return func(k *KeyedLimiter) { k.metrics = m }
}

// New creates a KeyedLimiter with the given configuration.
func New(cfg Config, opts ...Option) *KeyedLimiter {
	k := &KeyedLimiter{
		cfg:     cfg.withDefaults(),
		clock:   &SystemClock{},
		metrics: NoopMetrics{},
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Allow checks and consumes one token for the key. A denied decision
// carries the delay after which the next token becomes available.
func (k *KeyedLimiter) Allow(key string) Decision {
	now := k.clock.Now()

	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		if len(k.entries) >= k.cfg.MaxKeys {
			k.evictOldestLocked()
		}
		e = &entry{limiter: rate.NewLimiter(k.cfg.Rate, k.cfg.Burst)}
		k.entries[key] = e
	}
	e.lastAccess = now

	res := e.limiter.ReserveN(now, 1)
	delay := res.DelayFrom(now)
	if delay > 0 {
		// トークンを先取りしないよう予約を取り消す
		res.Cancel()
	}
	remaining := int(e.limiter.TokensAt(now))
	active := len(k.entries)
	k.mu.Unlock()

	k.metrics.SetActiveKeys(k.cfg.Name, active)

	if delay > 0 {
		k.metrics.RecordDenied(k.cfg.Name)
		return Decision{
			Key:        key,
			Limiter:    k.cfg.Name,
			Allowed:    false,
			Burst:      k.cfg.Burst,
			RetryAfter: delay,
			ResetAt:    now.Add(delay),
		}
	}

	k.metrics.RecordAllowed(k.cfg.Name)
	return Decision{
		Key:       key,
		Limiter:   k.cfg.Name,
		Allowed:   true,
		Burst:     k.cfg.Burst,
		Remaining: remaining,
		ResetAt:   now,
	}
}

// Len returns the number of tracked keys.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}

// Cleanup drops keys idle longer than IdleTTL and returns how many were
// removed. Callers run it on a ticker.
func (k *KeyedLimiter) Cleanup() int {
	cutoff := k.clock.Now().Add(-k.cfg.IdleTTL)

	k.mu.Lock()
	removed := 0
	for key, e := range k.entries {
		if e.lastAccess.Before(cutoff) {
			delete(k.entries, key)
			removed++
		}
	}
	active := len(k.entries)
	k.mu.Unlock()

	if removed > 0 {
		k.metrics.RecordEviction(k.cfg.Name, removed)
	}
	k.metrics.SetActiveKeys(k.cfg.Name, active)
	return removed
}

// evictOldestLocked removes the least recently used key. Called with the
// lock held, only when the key cap is hit, so the linear scan stays off
// the hot path.
func (k *KeyedLimiter) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, e := range k.entries {
		if first || e.lastAccess.Before(oldest) {
			oldestKey, oldest = key, e.lastAccess
			first = false
		}
	}
	if oldestKey != "" {
		delete(k.entries, oldestKey)
		k.metrics.RecordEviction(k.cfg.Name, 1)
	}
}
