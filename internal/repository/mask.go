package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SortField is a whitelisted mask ordering column.
type SortField string

const (
	SortRatingsCount  SortField = "ratings_count"
	SortUploadedOn    SortField = "uploaded_on"
	SortAverageRating SortField = "average_rating"
	SortMaskName      SortField = "name"
)

// ListMasksParams describes an ordered, optionally filtered, cursor-paginated
// mask query. StartAfterID is the id of the last mask of the previous page.
type ListMasksParams struct {
	SortBy       SortField
	Descending   bool
	Limit        int
	FilterTags   []string
	StartAfterID *int64
}

// maskIDLockKey serializes gap-filling id assignment across creators.
const maskIDLockKey = 0x6d61736b // "mask"

const maskColumns = `id, mask_url, name, description, images, tags, uploader_google_id,
		average_rating, ratings_count, uploaded_on, last_accessed_on, is_removed`

// MaskRepository handles database operations for masks
type MaskRepository struct {
	db *pgxpool.Pool
}

// NewMaskRepository creates a new mask repository
func NewMaskRepository(db *pgxpool.Pool) *MaskRepository {
	return &MaskRepository{db: db}
}

// Create inserts a new mask under the smallest non-negative integer id not
// currently in use. Scan and insert run in one transaction under an advisory
// lock, so concurrent creators cannot be assigned the same id.
func (r *MaskRepository) Create(ctx context.Context, mask *models.Mask) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, maskIDLockKey); err != nil {
		return 0, fmt.Errorf("failed to acquire id lock: %w", err)
	}

	rows, err := tx.Query(ctx, `SELECT id FROM masks ORDER BY id`)
	if err != nil {
		return 0, fmt.Errorf("failed to scan mask ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, fmt.Errorf("failed to collect mask ids: %w", err)
	}

	mask.ID = nextFreeID(ids)

	query := `
		INSERT INTO masks (id, mask_url, name, description, images, tags, uploader_google_id,
			average_rating, ratings_count, uploaded_on, last_accessed_on, is_removed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, query,
		mask.ID, mask.MaskURL, mask.Name, mask.Description, mask.Images, mask.Tags,
		mask.UploaderGoogleID, mask.AverageRating, mask.RatingsCount,
		mask.UploadedOn, mask.LastAccessedOn, mask.IsRemoved,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create mask: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit mask creation: %w", err)
	}
	return mask.ID, nil
}

// nextFreeID returns the smallest non-negative integer absent from ids.
// ids must be sorted ascending.
func nextFreeID(ids []int64) int64 {
	var next int64
	for _, id := range ids {
		if id != next {
			return next
		}
		next++
	}
	return next
}

// GetByID retrieves a mask by id
func (r *MaskRepository) GetByID(ctx context.Context, id int64) (*models.Mask, error) {
	query := `SELECT ` + maskColumns + ` FROM masks WHERE id = $1`
	mask, err := scanMask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("mask %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get mask: %w", err)
	}
	return mask, nil
}

// Exists checks whether a mask with the given id exists
func (r *MaskRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM masks WHERE id = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check mask existence: %w", err)
	}
	return exists, nil
}

// List returns one page of masks. Pagination is keyset-based: when
// StartAfterID is set, the page begins strictly after that mask in the
// requested ordering.
func (r *MaskRepository) List(ctx context.Context, params ListMasksParams) ([]*models.Mask, error) {
	dir := "ASC"
	cmp := ">"
	if params.Descending {
		dir = "DESC"
		cmp = "<"
	}

	query := `SELECT ` + maskColumns + ` FROM masks`
	args := []any{}
	where := ""

	if len(params.FilterTags) > 0 {
		args = append(args, params.FilterTags)
		where = fmt.Sprintf(" WHERE tags && $%d", len(args))
	}
	if params.StartAfterID != nil {
		args = append(args, *params.StartAfterID)
		clause := fmt.Sprintf("(%s, id) %s (SELECT %s, id FROM masks WHERE id = $%d)",
			params.SortBy, cmp, params.SortBy, len(args))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	args = append(args, params.Limit)
	query += where + fmt.Sprintf(" ORDER BY %s %s, id %s LIMIT $%d",
		params.SortBy, dir, dir, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list masks: %w", err)
	}
	defer rows.Close()

	var masks []*models.Mask
	for rows.Next() {
		mask, err := scanMask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mask: %w", err)
		}
		masks = append(masks, mask)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating masks: %w", err)
	}
	return masks, nil
}

func scanMask(row pgx.Row) (*models.Mask, error) {
	var mask models.Mask
	err := row.Scan(
		&mask.ID, &mask.MaskURL, &mask.Name, &mask.Description, &mask.Images, &mask.Tags,
		&mask.UploaderGoogleID, &mask.AverageRating, &mask.RatingsCount,
		&mask.UploadedOn, &mask.LastAccessedOn, &mask.IsRemoved,
	)
	if err != nil {
		return nil, err
	}
	return &mask, nil
}
