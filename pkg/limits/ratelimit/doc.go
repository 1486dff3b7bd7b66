// Package ratelimit implements the gateway's per-client sliding window
// rate limiter.
//
// # Algorithm
//
// The limiter keeps an ordered sequence of request timestamps per client
// identity. On every admission check it drops timestamps that fell out of
// the window, denies if the remaining count has reached the limit, and
// otherwise records the new timestamp:
//
//	limiter := ratelimit.NewLimiter(ratelimit.Config{
//	    MaxRequests: 10,
//	    Window:      time.Minute,
//	})
//	if !limiter.Admit(identity) {
//	    // 429
//	}
//
// Denied attempts are never recorded, so a throttled client does not push
// its own window further out by retrying.
//
// # Eviction
//
// One-shot callers would otherwise leave empty entries behind forever, so a
// Sweeper runs on a fixed cron cadence and drops timestamps older than twice
// the window, removing identities whose sequence becomes empty:
//
//	sweeper := ratelimit.NewSweeper(limiter, 5*time.Minute)
//	sweeper.Start()
//	defer sweeper.Stop()
//
// # Thread Safety
//
// A single mutex guards the whole timestamp map. Admission checks and the
// sweep are mutually exclusive; concurrent callers for the same identity are
// strictly serialized, so the limit cannot be overshot under load.
//
// Limiter state lives only in memory and resets on process restart.
package ratelimit
