// Package middleware provides the HTTP middleware chain for the gateway.
//
// The server applies the middleware outermost-first in this order:
//
//	Recovery -> Logging -> RequestID -> CORS -> routes
//
// Recovery converts panics into a JSON 500 without leaking internals,
// Logging emits one structured line per request, RequestID assigns a
// correlation id (honoring a client-supplied X-Request-ID), and CORS adds
// cross-origin headers and answers preflight requests.
package middleware
