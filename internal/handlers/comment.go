package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/services"

	"github.com/rs/zerolog/log"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type postCommentRequest struct {
	MaskID   *int64 `json:"maskId"`
	GoogleID string `json:"googleId"`
	Comment  string `json:"comment"`
}

// PostComment handles POST /postComment
func (h *CommentHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	var req postCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondText(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MaskID == nil {
		respondText(w, http.StatusBadRequest, "maskId is required")
		return
	}

	if err := h.commentService.PostComment(r.Context(), *req.MaskID, req.GoogleID, req.Comment); err != nil {
		respondServiceError(w, "postComment", err)
		return
	}

	log.Info().Int64("mask_id", *req.MaskID).Str("google_id", req.GoogleID).Msg("Comment posted")
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}

// GetComments handles GET /getComments
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	maskID, ok := parseMaskID(w, r.URL.Query().Get("maskId"))
	if !ok {
		return
	}

	comments, err := h.commentService.GetComments(r.Context(), maskID)
	if err != nil {
		respondServiceError(w, "getComments", err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	respondJSON(w, http.StatusOK, comments)
}
