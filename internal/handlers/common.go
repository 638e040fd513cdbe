package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ride-tracker-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// Envelope wraps every successful response
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondOK sends a 200 envelope
func respondOK(w http.ResponseWriter, success bool, data any, message string) {
	respondJSON(w, http.StatusOK, Envelope{Success: success, Data: data, Message: message})
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Detail: message})
}

// respondServiceError maps domain errors to client errors and everything
// else to a 500 carrying the error text
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, models.ErrActivityNotFound):
		respondError(w, "Activity not found", http.StatusNotFound)
	case errors.Is(err, models.ErrAvatarTooLarge):
		respondError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrValidation):
		respondError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrExportUnavailable):
		respondError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg(op + " failed")
		respondError(w, err.Error(), http.StatusInternalServerError)
	}
}

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, models.ErrValidation) {
			return err
		}
		return fmt.Errorf("%w: invalid request body: %v", models.ErrValidation, err)
	}
	return nil
}
