// Package gateway provides the request-processing building blocks shared by
// the HTTP handlers.
//
// It covers the edges of the request lifecycle:
//
//   - ParseChatRequest: the parse-then-validate boundary for inbound bodies
//   - ResolveIdentity: the per-caller rate limit key
//   - WriteJSON / WriteError: JSON response writers
//   - HandleUpstreamError: translation of upstream outcomes to HTTP results
//
// The orchestration itself lives in the handlers subpackage.
package gateway
