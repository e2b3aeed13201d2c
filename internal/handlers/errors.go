package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"xplaindfile/internal/contextutil"
	"xplaindfile/internal/service"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// handleServiceError maps service layer errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		logger.WarnContext(ctx, "invalid input", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrExternalService):
		logger.ErrorContext(ctx, "external service error", "error", err)
		writeError(w, http.StatusBadGateway, "External service error")
	default:
		logger.ErrorContext(ctx, "internal error", "error", err)
		writeError(w, http.StatusInternalServerError, defaultMsg)
	}
}
