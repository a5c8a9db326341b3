package handlers

import (
	"net/http"

	"github.com/LastWeekNextDay/CamMask-host/internal/services"

	"github.com/rs/zerolog/log"
)

// UploadHandler handles multipart file uploads
type UploadHandler struct {
	uploadService *services.UploadService
	maxBytes      int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *services.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, maxBytes: maxBytes}
}

// UploadFile handles POST /uploadFile. The body is streamed, never fully
// buffered: MaxBytesReader enforces the size cap and MultipartReader walks
// the parts as they arrive.
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	form, err := r.MultipartReader()
	if err != nil {
		respondText(w, http.StatusBadRequest, "expected a multipart/form-data body")
		return
	}

	result, err := h.uploadService.Process(r.Context(), form)
	if err != nil {
		respondServiceError(w, "uploadFile", err)
		return
	}

	log.Info().Int("files", len(result.Files)).Msg("Upload complete")
	respondJSON(w, http.StatusOK, result)
}
