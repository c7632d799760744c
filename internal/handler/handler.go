// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chronosvault/chronosvault/internal/handler/dto"
	"github.com/chronosvault/chronosvault/internal/service"
)

// Handler serves the endpoints that need no dependencies.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Hello is the root endpoint.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"message": "Hello from Chronos Vault!",
		"version": "0.1.0",
	}
	writeJSON(w, http.StatusOK, response)
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "resource not found",
	}
	writeJSON(w, http.StatusNotFound, response)
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"error": "method not allowed",
	}
	writeJSON(w, http.StatusMethodNotAllowed, response)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		_ = err
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(logger *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidUnlockDate):
		writeError(w, http.StatusBadRequest, "INVALID_UNLOCK_DATE", "Unlock date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "ENTRY_NOT_FOUND", "Diary entry not found")
	case errors.Is(err, service.ErrHandleTaken):
		writeError(w, http.StatusConflict, "HANDLE_TAKEN", "Handle already taken")
	case errors.Is(err, service.ErrInvalidRegistration):
		writeError(w, http.StatusBadRequest, "INVALID_REGISTRATION", "Handle and password are required")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid handle or password")
	case errors.Is(err, service.ErrInsightUnavailable):
		// The real cause stays in the server logs.
		writeError(w, http.StatusServiceUnavailable, "INSIGHT_UNAVAILABLE", "The AI link is unstable. Try again later.")
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
