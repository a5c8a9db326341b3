package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/services"

	"github.com/rs/zerolog/log"
)

// MaskHandler handles mask-related HTTP requests
type MaskHandler struct {
	maskService *services.MaskService
}

// NewMaskHandler creates a new mask handler
func NewMaskHandler(maskService *services.MaskService) *MaskHandler {
	return &MaskHandler{maskService: maskService}
}

type createMaskResponse struct {
	Success bool  `json:"success"`
	MaskID  int64 `json:"maskId"`
}

// CreateMask handles POST /createMask
func (h *MaskHandler) CreateMask(w http.ResponseWriter, r *http.Request) {
	var req services.CreateMaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondText(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.maskService.CreateMask(r.Context(), req)
	if err != nil {
		respondServiceError(w, "createMask", err)
		return
	}

	log.Info().Int64("mask_id", id).Str("uploader", req.UploaderGoogleID).Msg("Mask created")
	respondJSON(w, http.StatusOK, createMaskResponse{Success: true, MaskID: id})
}

// GetMask handles GET /getMask
func (h *MaskHandler) GetMask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseMaskID(w, r.URL.Query().Get("maskId"))
	if !ok {
		return
	}

	mask, err := h.maskService.GetMask(r.Context(), id)
	if err != nil {
		respondServiceError(w, "getMask", err)
		return
	}

	respondJSON(w, http.StatusOK, mask)
}

type listMasksResponse struct {
	Masks      []*models.Mask `json:"masks"`
	NextCursor *int64         `json:"nextCursor"`
}

// GetMasks handles GET /getMasks. Unknown sortBy/sortDirection values fall
// back to the defaults (ratingsCount, desc) rather than erroring.
func (h *MaskHandler) GetMasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := services.ListMasksRequest{
		SortBy:        q.Get("sortBy"),
		SortDirection: q.Get("sortDirection"),
		FilterTags:    parseTags(q["filterTags"]),
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			req.Limit = limit
		}
	}
	if cursor := q.Get("startAfter"); cursor != "" {
		id, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			respondText(w, http.StatusBadRequest, "startAfter must be a mask id")
			return
		}
		req.StartAfterID = &id
	}

	masks, next, err := h.maskService.ListMasks(r.Context(), req)
	if err != nil {
		respondServiceError(w, "getMasks", err)
		return
	}
	if masks == nil {
		masks = []*models.Mask{}
	}

	respondJSON(w, http.StatusOK, listMasksResponse{Masks: masks, NextCursor: next})
}

// parseTags accepts repeated filterTags params as well as comma-separated
// values in a single param.
func parseTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// parseMaskID parses a required maskId parameter, responding 400 itself
// when the value is missing or malformed.
func parseMaskID(w http.ResponseWriter, raw string) (int64, bool) {
	if raw == "" {
		respondText(w, http.StatusBadRequest, "maskId is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		respondText(w, http.StatusBadRequest, "maskId must be a non-negative integer")
		return 0, false
	}
	return id, true
}
