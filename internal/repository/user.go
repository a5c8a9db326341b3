package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (google_id, name, photo_url, can_comment, can_upload, creation_date, last_access)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		user.GoogleID, user.Name, user.PhotoURL,
		user.CanComment, user.CanUpload, user.CreationDate, user.LastAccess,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByGoogleID retrieves a user by Google ID
func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	query := `
		SELECT google_id, name, photo_url, can_comment, can_upload, creation_date, last_access
		FROM users
		WHERE google_id = $1
	`
	var user models.User
	err := r.db.QueryRow(ctx, query, googleID).Scan(
		&user.GoogleID, &user.Name, &user.PhotoURL,
		&user.CanComment, &user.CanUpload, &user.CreationDate, &user.LastAccess,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", googleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Exists checks whether a user with the given Google ID exists
func (r *UserRepository) Exists(ctx context.Context, googleID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE google_id = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, googleID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// TouchLastAccess updates the last access timestamp for a user
func (r *UserRepository) TouchLastAccess(ctx context.Context, googleID string, at time.Time) error {
	query := `UPDATE users SET last_access = $1 WHERE google_id = $2`
	_, err := r.db.Exec(ctx, query, at, googleID)
	if err != nil {
		return fmt.Errorf("failed to update last access: %w", err)
	}
	return nil
}
