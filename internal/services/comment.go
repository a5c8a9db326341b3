package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/repository"

	"github.com/google/uuid"
)

// CommentStore is the persistence surface the comment service needs.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByMask(ctx context.Context, maskID int64) ([]*models.Comment, error)
}

// CommentService handles comment-related business logic
type CommentService struct {
	comments CommentStore
	masks    MaskStore
	users    UserStore
}

// NewCommentService creates a new comment service
func NewCommentService(comments CommentStore, masks MaskStore, users UserStore) *CommentService {
	return &CommentService{comments: comments, masks: masks, users: users}
}

// PostComment appends a comment to a mask. Comment ids are surrogate uuids;
// no aggregate is updated.
func (s *CommentService) PostComment(ctx context.Context, maskID int64, googleID, text string) error {
	if googleID == "" {
		return fmt.Errorf("%w: googleId is required", ErrValidation)
	}
	if text == "" {
		return fmt.Errorf("%w: comment is required", ErrValidation)
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
		return fmt.Errorf("user %s may not comment: %w", googleID, ErrForbidden)
	}

	comment := &models.Comment{
		ID:       uuid.New().String(),
		MaskID:   maskID,
		GoogleID: googleID,
		Comment:  text,
		PostedOn: time.Now(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetComments returns all comments for a mask, newest first.
func (s *CommentService) GetComments(ctx context.Context, maskID int64) ([]*models.Comment, error) {
	exists, err := s.masks.Exists(ctx, maskID)
	if err != nil {
		return nil, fmt.Errorf("failed to check mask existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("mask %d: %w", maskID, ErrNotFound)
	}

	comments, err := s.comments.ListByMask(ctx, maskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
