package services

import (
	"context"
	"fmt"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"

	"github.com/google/uuid"
)

// ReportStore is the persistence surface the report service needs.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
}

// ReportService handles abuse reports
type ReportService struct {
	reports ReportStore
}

// NewReportService creates a new report service
func NewReportService(reports ReportStore) *ReportService {
	return &ReportService{reports: reports}
}

// PostReportRequest carries the fields of a new report.
type PostReportRequest struct {
	ReportedItemType string `json:"reportedItemType"`
	ReportedItemID   string `json:"reportedItemId"`
	ReporterGoogleID string `json:"reporterGoogleId"`
	Reason           string `json:"reason"`
	Description      string `json:"description"`
}

// PostReport appends a report. The reported item is deliberately not
// checked for existence.
func (s *ReportService) PostReport(ctx context.Context, req PostReportRequest) error {
	switch {
	case req.ReportedItemType == "":
		return fmt.Errorf("%w: reportedItemType is required", ErrValidation)
	case req.ReportedItemID == "":
		return fmt.Errorf("%w: reportedItemId is required", ErrValidation)
	case req.ReporterGoogleID == "":
		return fmt.Errorf("%w: reporterGoogleId is required", ErrValidation)
	case req.Reason == "":
		return fmt.Errorf("%w: reason is required", ErrValidation)
	}

	report := &models.Report{
		ID:               uuid.New().String(),
		ReportedItemType: req.ReportedItemType,
		ReportedItemID:   req.ReportedItemID,
		ReporterGoogleID: req.ReporterGoogleID,
		Reason:           req.Reason,
		Description:      req.Description,
		ReportedOn:       time.Now(),
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}
