package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"lanternhq/relay/pkg/gateway/types"
)

// MaxRequestBodySize is the maximum allowed request body size (1MB).
// Chat payloads are small; anything larger is rejected before parsing.
const MaxRequestBodySize = 1 * 1024 * 1024

// RequestError represents a request body that could not be parsed.
type RequestError struct {
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

// ParseChatRequest parses and validates an inbound chat request body.
//
// The body is size-limited, unmarshaled into a typed ChatRequest, and
// validated. Parsing failures return a *RequestError; field failures
// return the *types.ValidationError from Validate. On success the
// returned request has a trimmed Query.
func ParseChatRequest(r *http.Request) (*types.ChatRequest, error) {
	limitedReader := io.LimitReader(r.Body, MaxRequestBodySize+1)

	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, &RequestError{Message: "Invalid JSON payload"}
	}
	if len(body) > MaxRequestBodySize {
		return nil, &RequestError{
			Message: fmt.Sprintf("request body exceeds maximum size of %d bytes", MaxRequestBodySize),
		}
	}

	var req types.ChatRequest
	if len(body) == 0 {
		return nil, &RequestError{Message: "Invalid JSON payload"}
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &RequestError{Message: "Invalid JSON payload"}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &req, nil
}
