package handlers

import (
	"net/http"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	Status string `json:"status"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// swagger:route GET /api/health healthCheck
//
// # Health check endpoint
//
// Returns a static liveness message.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Service is running
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "xplaindfile backend running"})
}
