package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/repository"
)

// RatingStore is the persistence surface the rating service needs.
type RatingStore interface {
	Get(ctx context.Context, maskID int64, googleID string) (*models.Rating, error)
	Set(ctx context.Context, rating *models.Rating) error
}

// RatingService handles rating-related business logic
type RatingService struct {
	ratings RatingStore
	masks   MaskStore
	users   UserStore
}

// NewRatingService creates a new rating service
func NewRatingService(ratings RatingStore, masks MaskStore, users UserStore) *RatingService {
	return &RatingService{ratings: ratings, masks: masks, users: users}
}

// PostRating records the user's rating for a mask, replacing any previous
// rating by the same user, and refreshes the mask's aggregate fields.
func (s *RatingService) PostRating(ctx context.Context, maskID int64, googleID string, value float64) error {
	if googleID == "" {
		return fmt.Errorf("%w: googleId is required", ErrValidation)
	}

	exists, err := s.masks.Exists(ctx, maskID)
	if err != nil {
		return fmt.Errorf("failed to check mask existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("mask %d: %w", maskID, ErrNotFound)
	}

	user, err := s.users.GetByGoogleID(ctx, googleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user %s: %w", googleID, ErrNotFound)
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if !user.CanComment {
		return fmt.Errorf("user %s may not rate: %w", googleID, ErrForbidden)
	}

	rating := &models.Rating{
		MaskID:   maskID,
		GoogleID: googleID,
		Rating:   value,
		PostedOn: time.Now(),
	}
	if err := s.ratings.Set(ctx, rating); err != nil {
		return fmt.Errorf("failed to set rating: %w", err)
	}
	return nil
}

// GetRating returns the rating the user gave to the mask.
func (s *RatingService) GetRating(ctx context.Context, maskID int64, googleID string) (*models.Rating, error) {
	if googleID == "" {
		return nil, fmt.Errorf("%w: googleId is required", ErrValidation)
	}

	exists, err := s.masks.Exists(ctx, maskID)
	if err != nil {
		return nil, fmt.Errorf("failed to check mask existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("mask %d: %w", maskID, ErrNotFound)
	}

	if _, err := s.users.GetByGoogleID(ctx, googleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", googleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	rating, err := s.ratings.Get(ctx, maskID, googleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("rating by %s for mask %d: %w", googleID, maskID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return rating, nil
}
