package handlers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/LastWeekNextDay/CamMask-host/internal/models"
	"github.com/LastWeekNextDay/CamMask-host/internal/repository"
)

// Minimal in-memory stores for driving the real services through HTTP.

type memUserStore struct {
	users map[string]models.User
}

func newMemUserStore(users ...models.User) *memUserStore {
	m := &memUserStore{users: map[string]models.User{}}
	for _, u := range users {
		m.users[u.GoogleID] = u
	}
	return m
}

func (m *memUserStore) Create(_ context.Context, user *models.User) error {
	m.users[user.GoogleID] = *user
	return nil
}

func (m *memUserStore) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	u, ok := m.users[googleID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", googleID, repository.ErrNotFound)
	}
	copy := u
	return &copy, nil
}

func (m *memUserStore) Exists(_ context.Context, googleID string) (bool, error) {
	_, ok := m.users[googleID]
	return ok, nil
}

func (m *memUserStore) TouchLastAccess(_ context.Context, googleID string, at time.Time) error {
	u := m.users[googleID]
	u.LastAccess = at
	m.users[googleID] = u
	return nil
}

type memMaskStore struct {
	masks map[int64]models.Mask
}

func newMemMaskStore(masks ...models.Mask) *memMaskStore {
	m := &memMaskStore{masks: map[int64]models.Mask{}}
	for _, mask := range masks {
		m.masks[mask.ID] = mask
	}
	return m
}

func (m *memMaskStore) Create(_ context.Context, mask *models.Mask) (int64, error) {
	var next int64
	for {
		if _, taken := m.masks[next]; !taken {
			break
		}
		next++
	}
	mask.ID = next
	m.masks[next] = *mask
	return next, nil
}

func (m *memMaskStore) GetByID(_ context.Context, id int64) (*models.Mask, error) {
	mask, ok := m.masks[id]
	if !ok {
		return nil, fmt.Errorf("mask %d: %w", id, repository.ErrNotFound)
	}
	copy := mask
	return &copy, nil
}

func (m *memMaskStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.masks[id]
	return ok, nil
}

func (m *memMaskStore) List(_ context.Context, _ repository.ListMasksParams) ([]*models.Mask, error) {
	var out []*models.Mask
	for _, mask := range m.masks {
		copy := mask
		out = append(out, &copy)
	}
	return out, nil
}

type memRatingStore struct {
	ratings map[string]models.Rating
}

func newMemRatingStore() *memRatingStore {
	return &memRatingStore{ratings: map[string]models.Rating{}}
}

func (m *memRatingStore) Get(_ context.Context, maskID int64, googleID string) (*models.Rating, error) {
	key := fmt.Sprintf("%d|%s", maskID, googleID)
	r, ok := m.ratings[key]
	if !ok {
		return nil, fmt.Errorf("rating: %w", repository.ErrNotFound)
	}
	copy := r
	return &copy, nil
}

func (m *memRatingStore) Set(_ context.Context, rating *models.Rating) error {
	m.ratings[fmt.Sprintf("%d|%s", rating.MaskID, rating.GoogleID)] = *rating
	return nil
}

type memCommentStore struct {
	comments []models.Comment
}

func (m *memCommentStore) Create(_ context.Context, comment *models.Comment) error {
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *memCommentStore) ListByMask(_ context.Context, maskID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range m.comments {
		if c.MaskID == maskID {
			copy := c
			out = append(out, &copy)
		}
	}
	return out, nil
}

type memReportStore struct {
	reports []models.Report
}

func (m *memReportStore) Create(_ context.Context, report *models.Report) error {
	m.reports = append(m.reports, *report)
	return nil
}

type memBlobStore struct{}

func (memBlobStore) Upload(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return "https://blobs.test/" + key, nil
}
