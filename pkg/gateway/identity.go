package gateway

import (
	"net"
	"strings"
)

// ForwardedForHeader is the header consulted for the caller's address when
// the gateway sits behind a proxy or load balancer.
const ForwardedForHeader = "X-Forwarded-For"

// ResolveIdentity derives the rate limit key for a caller.
//
// If forwardedFor is non-empty, its first comma-separated entry (trimmed)
// is used as the address component; otherwise the host part of remoteAddr
// is used, falling back to the raw value when it carries no port. The
// identity is the address joined with the session id. An empty session id
// is tolerated so resolution never fails.
func ResolveIdentity(remoteAddr, forwardedFor, sessionID string) string {
	addr := ClientAddress(remoteAddr, forwardedFor)
	return addr + ":" + sessionID
}

// ClientAddress picks the address component of the identity.
func ClientAddress(remoteAddr, forwardedFor string) string {
	if forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		if trimmed := strings.TrimSpace(first); trimmed != "" {
			return trimmed
		}
	}

	// RemoteAddr is host:port for TCP connections; the port changes per
	// connection and must not split one caller into many identities.
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
