package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lanternhq/relay/pkg/gateway/types"
)

// Timestamp returns the current time formatted for response payloads.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return nil
}

// WriteError writes a JSON error response with just a message.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, types.NewErrorResponse(message))
}
