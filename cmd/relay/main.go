// Relay is an HTTP gateway that fronts a downstream LLM chat service.
//
// It validates inbound chat requests, enforces a per-client sliding-window
// rate limit, forwards admitted requests upstream, and records an audit
// trail of every decision.
//
// Usage:
//
//	# Start the gateway with default configuration
//	relay run
//
//	# Start with a custom configuration file
//	relay run --config /etc/relay/config.yaml
//
//	# Validate a configuration file without starting
//	relay validate
//
//	# Query the audit trail
//	relay audit query --outcome rate_limited --limit 20
//
//	# Show version information
//	relay version
package main

func main() {
	Execute()
}
