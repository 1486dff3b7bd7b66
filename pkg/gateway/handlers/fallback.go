package handlers

import (
	"net/http"

	"lanternhq/relay/pkg/gateway"
)

// NotFoundHandler returns the JSON 404 fallback for unmatched paths.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gateway.WriteError(w, http.StatusNotFound, "Endpoint not found")
	})
}

// MethodNotAllowedHandler returns the JSON 405 response for known paths
// hit with the wrong method.
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gateway.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
}
