package upstream

import (
	"fmt"
	"time"
)

// UpstreamError represents a non-2xx response from the LLM service.
type UpstreamError struct {
	// StatusCode is the HTTP status the service answered with.
	StatusCode int

	// Body is the raw response body.
	Body string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.StatusCode, e.Body)
}

// TimeoutError represents a request that exceeded the configured timeout.
type TimeoutError struct {
	// Timeout is the configured wait ceiling.
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("upstream request timed out after %s", e.Timeout)
}

// ConnectionError represents a connection failure (refused, reset, DNS)
// before any response was received.
type ConnectionError struct {
	// Cause is the underlying network error.
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("upstream connection failed: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// ParseError represents a 2xx response whose body could not be decoded.
type ParseError struct {
	// RawResponse is the body that failed to parse.
	RawResponse string

	// Cause is the underlying decode error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("upstream response parse error: %v", e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
