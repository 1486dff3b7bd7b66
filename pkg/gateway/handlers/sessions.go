package handlers

import (
	"net/http"
	"strings"

	"lanternhq/relay/pkg/gateway"
	"lanternhq/relay/pkg/gateway/types"
)

// SessionsPathPrefix is the mount point for the sessions handler.
const SessionsPathPrefix = "/api/sessions/"

// SessionsHandler handles GET /api/sessions/{id}. Session storage lives
// upstream, so the endpoint only echoes the id back.
type SessionsHandler struct{}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler() *SessionsHandler {
	return &SessionsHandler{}
}

// ServeHTTP implements http.Handler for the sessions endpoint.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		gateway.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	sessionID := strings.TrimPrefix(r.URL.Path, SessionsPathPrefix)
	if sessionID == "" || strings.Contains(sessionID, "/") {
		gateway.WriteError(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	gateway.WriteJSON(w, http.StatusOK, &types.SessionResponse{
		SessionID: sessionID,
		Message:   "Session endpoint - implement as needed",
	})
}
