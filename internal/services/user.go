package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/repository"
)

// UserStore is the persistence surface the user service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Exists(ctx context.Context, googleID string) (bool, error)
	TouchLastAccess(ctx context.Context, googleID string, at time.Time) error
}

// UserService handles user-related business logic
type UserService struct {
	users UserStore
}

// NewUserService creates a new user service
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// CreateUser registers a new user. Registering an already-known googleId is
// an error; the existing record is never overwritten.
func (s *UserService) CreateUser(ctx context.Context, googleID, name, photoURL string) error {
	if googleID == "" {
		return fmt.Errorf("%w: googleId is required", ErrValidation)
	}
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	exists, err := s.users.Exists(ctx, googleID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return fmt.Errorf("user %s: %w", googleID, ErrAlreadyExists)
	}

	now := time.Now()
	user := &models.User{
		GoogleID:     googleID,
		Name:         name,
		PhotoURL:     photoURL,
		CanComment:   true,
		CanUpload:    true,
		CreationDate: now,
		LastAccess:   now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser returns the user record, updating lastAccess as a side effect.
func (s *UserService) GetUser(ctx context.Context, googleID string) (*models.User, error) {
	if googleID == "" {
		return nil, fmt.Errorf("%w: googleId is required", ErrValidation)
	}

	user, err := s.users.GetByGoogleID(ctx, googleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", googleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	now := time.Now()
	if err := s.users.TouchLastAccess(ctx, googleID, now); err != nil {
		return nil, fmt.Errorf("failed to update last access: %w", err)
	}
	user.LastAccess = now
	return user, nil
}
