package repository

import (
	"context"
	"fmt"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CommentRepository handles database operations for comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create appends a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, mask_id, google_id, comment, posted_on)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		comment.ID, comment.MaskID, comment.GoogleID, comment.Comment, comment.PostedOn,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByMask retrieves all comments for a mask, newest first
func (r *CommentRepository) ListByMask(ctx context.Context, maskID int64) ([]*models.Comment, error) {
	query := `
		SELECT id, mask_id, google_id, comment, posted_on
		FROM comments
		WHERE mask_id = $1
		ORDER BY posted_on DESC
	`
	rows, err := r.db.Query(ctx, query, maskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.MaskID, &comment.GoogleID,
			&comment.Comment, &comment.PostedOn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}
