package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RatingRepository handles database operations for ratings
type RatingRepository struct {
	db *pgxpool.Pool
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{db: db}
}

// Get retrieves the rating a user gave to a mask
func (r *RatingRepository) Get(ctx context.Context, maskID int64, googleID string) (*models.Rating, error) {
	query := `
		SELECT mask_id, google_id, rating, posted_on
		FROM ratings
		WHERE mask_id = $1 AND google_id = $2
	`
	var rating models.Rating
	err := r.db.QueryRow(ctx, query, maskID, googleID).Scan(
		&rating.MaskID, &rating.GoogleID, &rating.Rating, &rating.PostedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rating for mask %d by %s: %w", maskID, googleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &rating, nil
}

// Set inserts or replaces the user's rating for a mask, then recomputes the
// mask's averageRating and ratingsCount from the rating rows. Both writes
// happen in one transaction so concurrent raters cannot leave the aggregate
// inconsistent.
func (r *RatingRepository) Set(ctx context.Context, rating *models.Rating) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	upsert := `
		INSERT INTO ratings (mask_id, google_id, rating, posted_on)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (mask_id, google_id)
		DO UPDATE SET rating = EXCLUDED.rating, posted_on = EXCLUDED.posted_on
	`
	_, err = tx.Exec(ctx, upsert, rating.MaskID, rating.GoogleID, rating.Rating, rating.PostedOn)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	aggregate := `
		UPDATE masks SET
			average_rating = COALESCE((SELECT AVG(rating) FROM ratings WHERE mask_id = $1), 0),
			ratings_count = (SELECT COUNT(*) FROM ratings WHERE mask_id = $1)
		WHERE id = $1
	`
	_, err = tx.Exec(ctx, aggregate, rating.MaskID)
	if err != nil {
		return fmt.Errorf("failed to update rating aggregate: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rating: %w", err)
	}
	return nil
}
