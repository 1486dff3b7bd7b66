// Package upstream implements the HTTP client for the downstream LLM chat
// service.
//
// The client issues a single JSON POST to the configured chat endpoint with
// a bounded wait time and classifies every outcome into a typed error:
//
//   - *UpstreamError: the service answered with a non-2xx status
//   - *TimeoutError: the request exceeded the configured timeout
//   - *ConnectionError: the connection failed before any response
//   - *ParseError: the 2xx response body could not be decoded
//
// Callers translate these into client-facing HTTP responses with errors.As.
// The client never retries; resilience logic lives outside this package.
package upstream
