package audit

import (
	"context"
	"time"
)

// Outcome classifies how the gateway disposed of a request.
const (
	// OutcomeSuccess means the request was forwarded and answered.
	OutcomeSuccess = "success"

	// OutcomeRejected means the request failed validation.
	OutcomeRejected = "rejected"

	// OutcomeRateLimited means the request was denied by the rate limiter.
	OutcomeRateLimited = "rate_limited"

	// OutcomeUpstreamError means the upstream call failed.
	OutcomeUpstreamError = "upstream_error"
)

// Record is a single audit entry for a gateway request.
type Record struct {
	// Identity
	ID        string `json:"id"`         // UUID v4
	RequestID string `json:"request_id"` // From middleware

	// Timestamps
	ReceivedAt time.Time `json:"received_at"` // When request arrived
	RecordedAt time.Time `json:"recorded_at"` // When record was created

	// Client
	ClientAddr string `json:"client_addr"` // Resolved client address
	SessionID  string `json:"session_id"`  // Session from request body
	Identity   string `json:"identity"`    // Rate limit identity (addr:session)

	// Disposition
	Outcome string `json:"outcome"` // One of the Outcome constants
	Status  int    `json:"status"`  // HTTP status returned to client
	Error   string `json:"error"`   // Error message, if any

	// Upstream
	UpstreamLatency time.Duration `json:"upstream_latency"` // Round-trip time, zero if not called
}

// Query defines filter parameters for listing audit records.
type Query struct {
	// Time range, inclusive on both ends.
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Filters
	SessionID  string `json:"session_id,omitempty"`
	ClientAddr string `json:"client_addr,omitempty"`
	Outcome    string `json:"outcome,omitempty"`

	// Pagination
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Store defines the interface for audit storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists an audit record.
	Save(ctx context.Context, record *Record) error

	// List retrieves records matching the query, newest first.
	// Returns an empty slice if nothing matches.
	List(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query.
	Count(ctx context.Context, query *Query) (int64, error)

	// Purge removes records received before the cutoff.
	// Returns the number of records removed.
	Purge(ctx context.Context, before time.Time) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
