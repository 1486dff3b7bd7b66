package types

// ChatResponse is the success payload for POST /api/chat.
type ChatResponse struct {
	// SessionID echoes the request's session token.
	SessionID string `json:"session_id"`

	// Response is the upstream model's reply text.
	Response string `json:"response"`

	// Timestamp is the response time in RFC 3339 format.
	Timestamp string `json:"timestamp"`
}

// HealthResponse is the payload for GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// SessionResponse is the payload for GET /api/sessions/{id}.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ErrorResponse is the shared error payload for every failing request.
type ErrorResponse struct {
	// Error is the client-facing error message.
	Error string `json:"error"`

	// Details carries additional context, such as an upstream response body.
	Details string `json:"details,omitempty"`

	// RetryAfter is the suggested wait in seconds before retrying.
	// Only set on rate-limited responses.
	RetryAfter int `json:"retry_after,omitempty"`
}

// NewErrorResponse creates an ErrorResponse with just a message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}
