// Package handlers provides the HTTP endpoint handlers for the relay gateway.
//
// The chat handler implements the full request pipeline:
//
//  1. Parse and validate the request body
//  2. Resolve the caller's rate limit identity
//  3. Consult the sliding-window rate limiter
//  4. Forward the request to the upstream LLM service
//  5. Translate the outcome to the client response
//
// Invalid requests are rejected before the limiter is consulted, so
// malformed traffic never consumes rate limit budget. Denied requests get
// a 429 with a retry_after hint; upstream failures map to 502/503/504.
//
// Supporting handlers cover the health endpoint, the session placeholder
// endpoint, and the JSON 404/405 fallbacks.
package handlers
