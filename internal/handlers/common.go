package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LastWeekNextDay/CamMask-host/internal/services"

	"github.com/rs/zerolog/log"
)

// internalErrorBody is the only thing a client sees of an unexpected
// failure; detail goes to the log.
type internalErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// respondText writes a plain-text response
func respondText(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)
	w.Write([]byte(message))
}

// respondServiceError maps a service error onto the HTTP surface. Expected
// failures (validation, permission, not-found, size) carry their reason as
// plain text; everything else collapses to a generic 500 envelope.
func respondServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrAlreadyExists):
		respondText(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrForbidden):
		respondText(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		respondText(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrTooLarge):
		respondText(w, http.StatusRequestEntityTooLarge, err.Error())
	default:
		log.Error().Err(err).Str("op", op).Msg("Request failed")
		respondJSON(w, http.StatusInternalServerError, internalErrorBody{
			Success: false,
			Error:   "internal server error",
		})
	}
}
