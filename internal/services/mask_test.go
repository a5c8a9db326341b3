package services

import (
	"context"
	"errors"
	"testing"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/repository"
)

func uploader(canUpload bool) models.User {
	return models.User{GoogleID: "g-1", Name: "Alice", CanComment: true, CanUpload: canUpload}
}

func validMaskRequest() CreateMaskRequest {
	return CreateMaskRequest{
		MaskURL:          "https://blobs.test/mask.glb",
		Name:             "Fox",
		Images:           []string{"https://blobs.test/fox.png"},
		Tags:             []string{"animal"},
		UploaderGoogleID: "g-1",
	}
}

func TestCreateMask(t *testing.T) {
	masks := newFakeMaskStore()
	svc := NewMaskService(masks, newFakeUserStore(uploader(true)))

	id, err := svc.CreateMask(context.Background(), validMaskRequest())
	if err != nil {
		t.Fatalf("CreateMask: %v", err)
	}
	if id != 0 {
		t.Errorf("first mask id = %d, want 0", id)
	}

	created := masks.masks[id]
	if created.AverageRating != 0 || created.RatingsCount != 0 {
		t.Errorf("rating fields = (%v, %d), want zeroed", created.AverageRating, created.RatingsCount)
	}
	if created.UploadedOn.IsZero() {
		t.Error("uploadedOn not set")
	}
}

// New masks take the smallest integer id not in use, filling gaps.
func TestCreateMaskFillsIDGap(t *testing.T) {
	masks := newFakeMaskStore(
		models.Mask{ID: 0}, models.Mask{ID: 1}, models.Mask{ID: 3},
	)
	svc := NewMaskService(masks, newFakeUserStore(uploader(true)))

	id, err := svc.CreateMask(context.Background(), validMaskRequest())
	if err != nil {
		t.Fatalf("CreateMask: %v", err)
	}
	if id != 2 {
		t.Errorf("mask id = %d, want 2", id)
	}
}

func TestCreateMaskValidation(t *testing.T) {
	svc := NewMaskService(newFakeMaskStore(), newFakeUserStore(uploader(true)))

	for name, mutate := range map[string]func(*CreateMaskRequest){
		"missing maskUrl":  func(r *CreateMaskRequest) { r.MaskURL = "" },
		"missing name":     func(r *CreateMaskRequest) { r.Name = "" },
		"missing images":   func(r *CreateMaskRequest) { r.Images = nil },
		"missing uploader": func(r *CreateMaskRequest) { r.UploaderGoogleID = "" },
	} {
		t.Run(name, func(t *testing.T) {
			req := validMaskRequest()
			mutate(&req)
			if _, err := svc.CreateMask(context.Background(), req); !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateMaskUploaderChecks(t *testing.T) {
	svc := NewMaskService(newFakeMaskStore(), newFakeUserStore())
	if _, err := svc.CreateMask(context.Background(), validMaskRequest()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown uploader: err = %v, want ErrNotFound", err)
	}

	svc = NewMaskService(newFakeMaskStore(), newFakeUserStore(uploader(false)))
	if _, err := svc.CreateMask(context.Background(), validMaskRequest()); !errors.Is(err, ErrForbidden) {
		t.Errorf("canUpload=false: err = %v, want ErrForbidden", err)
	}
}

func TestGetMaskUnknown(t *testing.T) {
	svc := NewMaskService(newFakeMaskStore(), newFakeUserStore())
	if _, err := svc.GetMask(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// Unknown sortBy/sortDirection values fall back to ratingsCount descending
// instead of failing.
func TestListMasksSortFallback(t *testing.T) {
	masks := newFakeMaskStore()
	svc := NewMaskService(masks, newFakeUserStore())

	_, _, err := svc.ListMasks(context.Background(), ListMasksRequest{
		SortBy:        "definitelyNotAField",
		SortDirection: "sideways",
	})
	if err != nil {
		t.Fatalf("ListMasks: %v", err)
	}
	if masks.listParams.SortBy != repository.SortRatingsCount {
		t.Errorf("SortBy = %q, want ratings_count", masks.listParams.SortBy)
	}
	if !masks.listParams.Descending {
		t.Error("Descending = false, want true")
	}
}

func TestListMasksParams(t *testing.T) {
	masks := newFakeMaskStore()
	masks.listResult = []*models.Mask{{ID: 4}, {ID: 7}}
	svc := NewMaskService(masks, newFakeUserStore())

	after := int64(9)
	result, next, err := svc.ListMasks(context.Background(), ListMasksRequest{
		Limit:         5,
		SortBy:        "maskName",
		SortDirection: "asc",
		FilterTags:    []string{"animal"},
		StartAfterID:  &after,
	})
	if err != nil {
		t.Fatalf("ListMasks: %v", err)
	}

	p := masks.listParams
	if p.SortBy != repository.SortMaskName || p.Descending || p.Limit != 5 {
		t.Errorf("params = %+v", p)
	}
	if p.StartAfterID == nil || *p.StartAfterID != 9 {
		t.Errorf("StartAfterID = %v, want 9", p.StartAfterID)
	}
	if len(result) != 2 {
		t.Fatalf("len(result) = %d, want 2", len(result))
	}
	if next == nil || *next != 7 {
		t.Errorf("next cursor = %v, want 7 (last mask of the page)", next)
	}
}

func TestListMasksLimitClamping(t *testing.T) {
	masks := newFakeMaskStore()
	svc := NewMaskService(masks, newFakeUserStore())

	svc.ListMasks(context.Background(), ListMasksRequest{Limit: 0})
	if masks.listParams.Limit != defaultListLimit {
		t.Errorf("limit 0 → %d, want default %d", masks.listParams.Limit, defaultListLimit)
	}

	svc.ListMasks(context.Background(), ListMasksRequest{Limit: 10_000})
	if masks.listParams.Limit != maxListLimit {
		t.Errorf("limit 10000 → %d, want cap %d", masks.listParams.Limit, maxListLimit)
	}
}

func TestListMasksEmptyPageHasNoCursor(t *testing.T) {
	masks := newFakeMaskStore()
	svc := NewMaskService(masks, newFakeUserStore())

	_, next, err := svc.ListMasks(context.Background(), ListMasksRequest{})
	if err != nil {
		t.Fatalf("ListMasks: %v", err)
	}
	if next != nil {
		t.Errorf("next cursor = %v, want nil for an empty page", next)
	}
}
