package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"supplydash/internal/models"
	"supplydash/internal/store"
)

// writeJSON sends v with the given status.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("json_encode_failed", "error", err)
	}
}

// sendError sends a JSON error response.
func sendError(w http.ResponseWriter, logger *slog.Logger, statusCode int, errorCode string, message string) {
	writeJSON(w, logger, statusCode, models.ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// sendServiceError maps a failed analytics call onto a status code.
func sendServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		sendError(w, logger, http.StatusGatewayTimeout, "timeout", "Request timed out")
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	case errors.Is(err, store.ErrNoSnapshot):
		sendError(w, logger, http.StatusServiceUnavailable, "data_unavailable", "Dataset is not available")
	default:
		logger.Error("request_failed", "error", err)
		sendError(w, logger, http.StatusInternalServerError, "internal_error", "Failed to compute analytics")
	}
}
