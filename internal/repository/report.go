package repository

import (
	"context"
	"fmt"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository handles database operations for reports. Reports are
// append-only; no read path exists.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create appends a new report
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, reported_item_type, reported_item_id, reporter_google_id, reason, description, reported_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		report.ID, report.ReportedItemType, report.ReportedItemID,
		report.ReporterGoogleID, report.Reason, report.Description, report.ReportedOn,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}
