package handlers

import (
	"net/http"

	"lanternhq/relay/pkg/gateway"
	"lanternhq/relay/pkg/gateway/types"
)

// HealthHandler handles health check requests for liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler. It always reports healthy; the
// gateway holds no state that can degrade short of the process dying.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		gateway.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	gateway.WriteJSON(w, http.StatusOK, &types.HealthResponse{
		Status:    "healthy",
		Timestamp: gateway.Timestamp(),
	})
}
