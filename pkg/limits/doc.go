// Package limits provides request admission control for the relay gateway.
//
// # Overview
//
// The limits package enforces per-client request quotas so that no single
// caller can monopolize the upstream LLM service. Admission decisions are
// made before a request is forwarded; denied requests consume no quota.
//
// # Architecture
//
// The package is organized into sub-packages:
//
//   - ratelimit: exact-count sliding window limiter and background sweeper
//
// # Usage
//
//	limiter := ratelimit.NewLimiter(ratelimit.Config{
//	    MaxRequests: 10,
//	    Window:      time.Minute,
//	})
//
//	if !limiter.Admit(identity) {
//	    // reject with 429
//	}
//
// # Thread Safety
//
// All operations are safe for concurrent use from multiple goroutines.
package limits
