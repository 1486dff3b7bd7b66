package gateway

import (
	"errors"
	"net/http"

	"lanternhq/relay/pkg/gateway/types"
	"lanternhq/relay/pkg/upstream"
)

// Client-facing messages for upstream failures.
const (
	MsgUpstreamError      = "LLM API error"
	MsgUpstreamTimeout    = "LLM API request timed out"
	MsgUpstreamConnection = "Failed to connect to LLM API"
	MsgUpstreamOther      = "Error calling LLM API"
)

// HandleUpstreamError translates an upstream failure into the outward HTTP
// status and error body.
//
// Mapping:
//
//	*upstream.UpstreamError   -> 502 with the upstream body as details
//	*upstream.TimeoutError    -> 504
//	*upstream.ConnectionError -> 503
//	anything else             -> 500 with a short detail message
func HandleUpstreamError(err error) (int, *types.ErrorResponse) {
	var upErr *upstream.UpstreamError
	if errors.As(err, &upErr) {
		return http.StatusBadGateway, &types.ErrorResponse{
			Error:   MsgUpstreamError,
			Details: upErr.Body,
		}
	}

	var timeoutErr *upstream.TimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusGatewayTimeout, types.NewErrorResponse(MsgUpstreamTimeout)
	}

	var connErr *upstream.ConnectionError
	if errors.As(err, &connErr) {
		return http.StatusServiceUnavailable, types.NewErrorResponse(MsgUpstreamConnection)
	}

	return http.StatusInternalServerError, &types.ErrorResponse{
		Error:   MsgUpstreamOther,
		Details: err.Error(),
	}
}
