package handlers

import (
	"net/http"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/service"
)

// ResetHandler handles HTTP requests for session resets.
type ResetHandler struct {
	resets service.ResetService
}

// NewResetHandler creates a new ResetHandler.
func NewResetHandler(resets service.ResetService) *ResetHandler {
	return &ResetHandler{resets: resets}
}

// ResetResponse represents the HTTP response payload for resets.
//
// swagger:model ResetResponse
type ResetResponse struct {
	Message string `json:"message"`
}

// ServeHTTP handles HTTP requests for session resets.
//
// swagger:route POST /reset resetSession
//
// # Reset the session
//
// Deletes the active vector index and clears the loaded document so a
// new file can be uploaded. Safe to call with no document loaded.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Session reset
//	  schema:
//	    "$ref": "#/definitions/ResetResponse"
//	'502':
//	  description: External service error (vector store delete failed)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	msg, err := h.resets.Reset(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to reset session")
		return
	}

	writeJSON(w, http.StatusOK, ResetResponse{Message: msg})
}
