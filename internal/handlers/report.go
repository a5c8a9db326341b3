package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/LastWeekNextDay/CamMask-host/internal/services"

	"github.com/rs/zerolog/log"
)

// ReportHandler handles report-related HTTP requests
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PostReport handles POST /postReport
func (h *ReportHandler) PostReport(w http.ResponseWriter, r *http.Request) {
	var req services.PostReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondText(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.reportService.PostReport(r.Context(), req); err != nil {
		respondServiceError(w, "postReport", err)
		return
	}

	log.Info().
		Str("item_type", req.ReportedItemType).
		Str("item_id", req.ReportedItemID).
		Str("reporter", req.ReporterGoogleID).
		Msg("Report filed")
	respondJSON(w, http.StatusOK, successResponse{Success: true})
}
