package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/LastWeekNextDay/CamMask-host/internal/services"

	"github.com/rs/zerolog/log"
)

// RatingHandler handles rating-related HTTP requests
type RatingHandler struct {
	ratingService *services.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Pointers distinguish absent fields from legitimate zero values: mask ids
// start at 0 and a rating of 0 is valid.
type postRatingRequest struct {
	MaskID   *int64   `json:"maskId"`
	GoogleID string   `json:"googleId"`
	Rating   *float64 `json:"rating"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// PostRating handles POST /postRating
func (h *RatingHandler) PostRating(w http.ResponseWriter, r *http.Request) {
	var req postRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondText(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MaskID == nil {
		respondText(w, http.StatusBadRequest, "maskId is required")
		return
	}
	if req.Rating == nil {
		respondText(w, http.StatusBadRequest, "rating is required")
		return
	}

	if err := h.ratingService.PostRating(r.Context(), *req.MaskID, req.GoogleID, *req.Rating); err != nil {
		respondServiceError(w, "postRating", err)
		return
	}

	log.Info().Int64("mask_id", *req.MaskID).Str("google_id", req.GoogleID).Msg("Rating posted")
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// GetRating handles GET /getRating
func (h *RatingHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	maskID, ok := parseMaskID(w, r.URL.Query().Get("maskId"))
	if !ok {
		return
	}
	googleID := r.URL.Query().Get("googleId")

	rating, err := h.ratingService.GetRating(r.Context(), maskID, googleID)
	if err != nil {
		respondServiceError(w, "getRating", err)
		return
	}

	respondJSON(w, http.StatusOK, rating)
}
