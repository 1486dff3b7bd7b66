package types

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// emailPattern matches local-part@domain.tld with an ASCII local part and a
// final label of at least two letters. Anchored at both ends.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validation error kinds.
const (
	// KindMissingField indicates a required field is absent or empty.
	KindMissingField = "missing_field"

	// KindInvalidField indicates a field is present but malformed.
	KindInvalidField = "invalid_field"
)

// ValidationError describes a single invalid field in an inbound request.
// Message is client-facing and is returned verbatim in the error response.
type ValidationError struct {
	// Field is the name of the offending field.
	Field string

	// Kind is KindMissingField or KindInvalidField.
	Kind string

	// Message is the client-facing description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
}

// NewMissingFieldError creates a ValidationError for an absent required field.
func NewMissingFieldError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindMissingField, Message: message}
}

// NewInvalidFieldError creates a ValidationError for a malformed field.
func NewInvalidFieldError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindInvalidField, Message: message}
}

// ChatRequest is the inbound payload for POST /api/chat.
type ChatRequest struct {
	// SessionID is an opaque caller-supplied session token.
	SessionID string `json:"session_id"`

	// Query is the chat prompt. Validate trims surrounding whitespace.
	Query string `json:"query"`

	// Email identifies the caller and must match a standard email grammar.
	Email string `json:"email"`
}

// UnmarshalJSON decodes the payload, tolerating a non-string query. A query
// of the wrong JSON type is treated as absent so Validate reports the
// query-specific error instead of a generic parse failure.
func (r *ChatRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		SessionID string          `json:"session_id"`
		Query     json.RawMessage `json:"query"`
		Email     string          `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.SessionID = raw.SessionID
	r.Email = raw.Email
	r.Query = ""
	if len(raw.Query) > 0 {
		var query string
		if err := json.Unmarshal(raw.Query, &query); err == nil {
			r.Query = query
		}
	}
	return nil
}

// Validate checks the request's required fields and normalizes Query by
// trimming whitespace. It returns a *ValidationError describing the first
// failing field, or nil if the request is valid.
//
// Validate is pure apart from the Query normalization: it performs no I/O
// and touches no shared state.
func (r *ChatRequest) Validate() error {
	if r.SessionID == "" {
		return NewMissingFieldError("session_id", "session_id is required")
	}

	trimmed := strings.TrimSpace(r.Query)
	if trimmed == "" {
		return NewInvalidFieldError("query", "query is required and must be a non-empty string")
	}
	r.Query = trimmed

	if r.Email == "" {
		return NewMissingFieldError("email", "email is required")
	}
	if !emailPattern.MatchString(r.Email) {
		return NewInvalidFieldError("email", "Invalid email format")
	}

	return nil
}
