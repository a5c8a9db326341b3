package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// MaskStore is the persistence surface the mask service needs.
type MaskStore interface {
	Create(ctx context.Context, mask *models.Mask) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Mask, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, params repository.ListMasksParams) ([]*models.Mask, error)
}

// MaskService handles mask-related business logic
type MaskService struct {
	masks MaskStore
	users UserStore
}

// NewMaskService creates a new mask service
func NewMaskService(masks MaskStore, users UserStore) *MaskService {
	return &MaskService{masks: masks, users: users}
}

// CreateMaskRequest carries the fields of a new mask.
type CreateMaskRequest struct {
	MaskURL          string   `json:"maskUrl"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Images           []string `json:"images"`
	Tags             []string `json:"tags"`
	UploaderGoogleID string   `json:"uploaderGoogleId"`
}

// CreateMask validates the request, checks the uploader's permission and
// stores the mask under the next free integer id, which it returns.
func (s *MaskService) CreateMask(ctx context.Context, req CreateMaskRequest) (int64, error) {
	switch {
	case req.MaskURL == "":
		return 0, fmt.Errorf("%w: maskUrl is required", ErrValidation)
	case req.Name == "":
		return 0, fmt.Errorf("%w: name is required", ErrValidation)
	case len(req.Images) == 0:
		return 0, fmt.Errorf("%w: images is required", ErrValidation)
	case req.UploaderGoogleID == "":
		return 0, fmt.Errorf("%w: uploaderGoogleId is required", ErrValidation)
	}

	uploader, err := s.users.GetByGoogleID(ctx, req.UploaderGoogleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, fmt.Errorf("uploader %s: %w", req.UploaderGoogleID, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to get uploader: %w", err)
	}
	if !uploader.CanUpload {
		return 0, fmt.Errorf("user %s may not upload: %w", req.UploaderGoogleID, ErrForbidden)
	}

	now := time.Now()
	mask := &models.Mask{
		MaskURL:          req.MaskURL,
		Name:             req.Name,
		Description:      req.Description,
		Images:           req.Images,
		Tags:             req.Tags,
		UploaderGoogleID: req.UploaderGoogleID,
		AverageRating:    0,
		RatingsCount:     0,
		UploadedOn:       now,
		LastAccessedOn:   now,
	}
	if mask.Tags == nil {
		mask.Tags = []string{}
	}

	id, err := s.masks.Create(ctx, mask)
	if err != nil {
		return 0, fmt.Errorf("failed to create mask: %w", err)
	}
	return id, nil
}

// GetMask returns the mask record unchanged.
func (s *MaskService) GetMask(ctx context.Context, id int64) (*models.Mask, error) {
	mask, err := s.masks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("mask %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get mask: %w", err)
	}
	return mask, nil
}

// ListMasksRequest describes one page of the mask listing.
type ListMasksRequest struct {
	Limit         int
	SortBy        string
	SortDirection string
	FilterTags    []string
	StartAfterID  *int64
}

// ListMasks returns one page of masks plus the cursor for the next page
// (the id of the last mask of this page, nil when the page is empty).
// Unknown sortBy/sortDirection values fall back to the defaults rather than
// erroring.
func (s *MaskService) ListMasks(ctx context.Context, req ListMasksRequest) ([]*models.Mask, *int64, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	params := repository.ListMasksParams{
		SortBy:       sortFieldFor(req.SortBy),
		Descending:   req.SortDirection != "asc",
		Limit:        limit,
		FilterTags:   req.FilterTags,
		StartAfterID: req.StartAfterID,
	}

	masks, err := s.masks.List(ctx, params)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list masks: %w", err)
	}

	var next *int64
	if len(masks) > 0 {
		last := masks[len(masks)-1].ID
		next = &last
	}
	return masks, next, nil
}

// sortFieldFor maps an API sort name to its column, defaulting to
// ratingsCount for anything unrecognized.
func sortFieldFor(name string) repository.SortField {
	switch name {
	case "uploadedOn":
		return repository.SortUploadedOn
	case "averageRating":
		return repository.SortAverageRating
	case "maskName":
		return repository.SortMaskName
	case "ratingsCount":
		return repository.SortRatingsCount
	default:
		return repository.SortRatingsCount
	}
}
