package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/repository"
)

// In-memory test doubles for the store interfaces. They honor the same
// contracts as the pgx repositories, including repository.ErrNotFound.

type fakeUserStore struct {
	users   map[string]models.User
	creates int
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[string]models.User{}}
	for _, u := range users {
		f.users[u.GoogleID] = u
	}
	return f
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.users[user.GoogleID] = *user
	f.creates++
	return nil
}

func (f *fakeUserStore) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	u, ok := f.users[googleID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", googleID, repository.ErrNotFound)
	}
	copy := u
	return &copy, nil
}

func (f *fakeUserStore) Exists(_ context.Context, googleID string) (bool, error) {
	_, ok := f.users[googleID]
	return ok, nil
}

func (f *fakeUserStore) TouchLastAccess(_ context.Context, googleID string, at time.Time) error {
	u, ok := f.users[googleID]
	if !ok {
		return fmt.Errorf("user %s: %w", googleID, repository.ErrNotFound)
	}
	u.LastAccess = at
	f.users[googleID] = u
	return nil
}

type fakeMaskStore struct {
	masks      map[int64]models.Mask
	listParams *repository.ListMasksParams
	listResult []*models.Mask
}

func newFakeMaskStore(masks ...models.Mask) *fakeMaskStore {
	f := &fakeMaskStore{masks: map[int64]models.Mask{}}
	for _, m := range masks {
		f.masks[m.ID] = m
	}
	return f
}

func (f *fakeMaskStore) Create(_ context.Context, mask *models.Mask) (int64, error) {
	var ids []int64
	for id := range f.masks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var next int64
	for _, id := range ids {
		if id != next {
			break
		}
		next++
	}
	mask.ID = next
	f.masks[next] = *mask
	return next, nil
}

func (f *fakeMaskStore) GetByID(_ context.Context, id int64) (*models.Mask, error) {
	m, ok := f.masks[id]
	if !ok {
		return nil, fmt.Errorf("mask %d: %w", id, repository.ErrNotFound)
	}
	copy := m
	return &copy, nil
}

func (f *fakeMaskStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.masks[id]
	return ok, nil
}

func (f *fakeMaskStore) List(_ context.Context, params repository.ListMasksParams) ([]*models.Mask, error) {
	f.listParams = &params
	return f.listResult, nil
}

type fakeRatingStore struct {
	ratings map[string]models.Rating
	masks   *fakeMaskStore
}

func newFakeRatingStore(masks *fakeMaskStore) *fakeRatingStore {
	return &fakeRatingStore{ratings: map[string]models.Rating{}, masks: masks}
}

func ratingKey(maskID int64, googleID string) string {
	return fmt.Sprintf("%d|%s", maskID, googleID)
}

func (f *fakeRatingStore) Get(_ context.Context, maskID int64, googleID string) (*models.Rating, error) {
	r, ok := f.ratings[ratingKey(maskID, googleID)]
	if !ok {
		return nil, fmt.Errorf("rating for mask %d by %s: %w", maskID, googleID, repository.ErrNotFound)
	}
	copy := r
	return &copy, nil
}

// Set mirrors the transactional upsert-then-aggregate of the real
// repository: one row per (maskId, googleId), aggregates refreshed from
// the remaining rows.
func (f *fakeRatingStore) Set(_ context.Context, rating *models.Rating) error {
	f.ratings[ratingKey(rating.MaskID, rating.GoogleID)] = *rating

	var sum float64
	var count int
	for _, r := range f.ratings {
		if r.MaskID == rating.MaskID {
			sum += r.Rating
			count++
		}
	}
	mask := f.masks.masks[rating.MaskID]
	mask.RatingsCount = count
	mask.AverageRating = 0
	if count > 0 {
		mask.AverageRating = sum / float64(count)
	}
	f.masks.masks[rating.MaskID] = mask
	return nil
}

type fakeCommentStore struct {
	comments []models.Comment
}

func (f *fakeCommentStore) Create(_ context.Context, comment *models.Comment) error {
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentStore) ListByMask(_ context.Context, maskID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range f.comments {
		if c.MaskID == maskID {
			copy := c
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedOn.After(out[j].PostedOn) })
	return out, nil
}

type fakeReportStore struct {
	reports []models.Report
}

func (f *fakeReportStore) Create(_ context.Context, report *models.Report) error {
	f.reports = append(f.reports, *report)
	return nil
}

type fakeBlobStore struct {
	keys []string
	err  error
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "https://blobs.test/" + key, nil
}
