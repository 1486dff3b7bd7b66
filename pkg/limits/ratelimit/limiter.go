package ratelimit

import (
	"sync"
	"time"
)

// Default limits applied when Config fields are zero.
const (
	DefaultMaxRequests = 10
	DefaultWindow      = 60 * time.Second
)

// Config contains the sliding window parameters.
type Config struct {
	// MaxRequests is the maximum number of admitted requests per window.
	MaxRequests int

	// Window is the sliding window duration.
	Window time.Duration
}

// withDefaults returns the config with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.MaxRequests <= 0 {
		c.MaxRequests = DefaultMaxRequests
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	return c
}

// Limiter is an exact-count sliding window rate limiter keyed by client
// identity. All methods are safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	entries map[string][]time.Time
	config  Config
}

// NewLimiter creates a limiter with the given configuration.
// Zero config fields fall back to DefaultMaxRequests and DefaultWindow.
func NewLimiter(config Config) *Limiter {
	return &Limiter{
		entries: make(map[string][]time.Time),
		config:  config.withDefaults(),
	}
}

// Admit reports whether a request from the given identity is within the
// rate limit. Admitted requests are recorded; denied attempts are not.
func (l *Limiter) Admit(identity string) bool {
	return l.admit(identity, time.Now())
}

// admit performs the admission check at the given instant.
// The prune, count check, and append run as one critical section so two
// concurrent callers for the same identity cannot both slip under the limit.
func (l *Limiter) admit(identity string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.config.Window)
	kept := pruneBefore(l.entries[identity], cutoff)

	if len(kept) >= l.config.MaxRequests {
		l.entries[identity] = kept
		return false
	}

	l.entries[identity] = append(kept, now)
	return true
}

// Sweep drops timestamps older than twice the window for every identity and
// removes identities whose sequence becomes empty. It returns the number of
// identities removed. Sweep is idempotent: a second pass with no admissions
// in between removes nothing further.
func (l *Limiter) Sweep() int {
	return l.sweep(time.Now())
}

func (l *Limiter) sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-2 * l.config.Window)
	removed := 0

	for identity, timestamps := range l.entries {
		kept := pruneBefore(timestamps, cutoff)
		if len(kept) == 0 {
			delete(l.entries, identity)
			removed++
			continue
		}
		l.entries[identity] = kept
	}

	return removed
}

// Identities returns the number of identities currently tracked.
func (l *Limiter) Identities() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Window returns the configured window duration. Handlers use this for the
// retry_after hint on denied requests.
func (l *Limiter) Window() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.config.Window
}

// UpdateConfig swaps the limiter parameters at runtime. Existing timestamp
// sequences are kept; the new window and limit apply from the next check.
func (l *Limiter) UpdateConfig(config Config) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config = config.withDefaults()
}

// pruneBefore returns the subsequence of timestamps strictly after cutoff.
// Timestamps are appended in chronological order, so a single scan for the
// first surviving entry suffices.
func pruneBefore(timestamps []time.Time, cutoff time.Time) []time.Time {
	for i, ts := range timestamps {
		if ts.After(cutoff) {
			return timestamps[i:]
		}
	}
	return nil
}
