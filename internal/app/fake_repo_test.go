package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"itemtrace-registry-service/internal/domain/item"
	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/outbound"

	"github.com/google/uuid"
)

// fakeItemRepo is an in-memory ItemRepository used by the service tests.
// It applies the same filter semantics as the SQL adapter.
type fakeItemRepo struct {
	mu    sync.Mutex
	items []*item.Item
	tick  int

	// behavior switches for adapter variants
	insertReturnsNil bool
	updateReturnsNil bool
	failWith         error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{}
}

func (f *fakeItemRepo) Insert(ctx context.Context, it *item.Item) (*item.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	stored := *it
	if stored.CreatedAt.IsZero() {
		f.tick++
		stored.CreatedAt = time.Now().UTC().Add(time.Duration(f.tick) * time.Millisecond)
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}
	f.items = append(f.items, &stored)

	if f.insertReturnsNil {
		return nil, nil
	}
	row := stored
	return &row, nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*item.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	for _, it := range f.items {
		if it.ID == id && it.UserID == userID {
			row := *it
			return &row, nil
		}
	}
	return nil, shared.ErrItemNotFound
}

func (f *fakeItemRepo) List(ctx context.Context, filter outbound.ItemFilter, limit, offset int) ([]*item.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	matched := f.filtered(filter)
	if offset >= len(matched) {
		return []*item.Item{}, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}

	out := make([]*item.Item, 0, len(matched))
	for _, it := range matched {
		row := *it
		out = append(out, &row)
	}
	return out, nil
}

func (f *fakeItemRepo) Count(ctx context.Context, filter outbound.ItemFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	return len(f.filtered(filter)), nil
}

func (f *fakeItemRepo) Update(ctx context.Context, id, userID uuid.UUID, patch *item.Patch) (*item.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	for _, it := range f.items {
		if it.ID == id && it.UserID == userID {
			patch.Apply(it)
			if f.updateReturnsNil {
				return nil, nil
			}
			row := *it
			return &row, nil
		}
	}
	return nil, shared.ErrItemNotFound
}

func (f *fakeItemRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}

	for i, it := range f.items {
		if it.ID == id && it.UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return shared.ErrItemNotFound
}

func (f *fakeItemRepo) LatestUpdatedAt(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	var latest *time.Time
	for _, it := range f.items {
		if it.UserID != userID {
			continue
		}
		if latest == nil || it.UpdatedAt.After(*latest) {
			t := it.UpdatedAt
			latest = &t
		}
	}
	return latest, nil
}

func (f *fakeItemRepo) CategoriesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	var categories []string
	for _, it := range f.items {
		if it.UserID == userID && it.Category != nil && *it.Category != "" {
			categories = append(categories, *it.Category)
		}
	}
	return categories, nil
}

// filtered applies the filter and orders newest first. Callers hold the lock.
func (f *fakeItemRepo) filtered(filter outbound.ItemFilter) []*item.Item {
	var matched []*item.Item
	for _, it := range f.items {
		if matches(filter, it) {
			matched = append(matched, it)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func matches(filter outbound.ItemFilter, it *item.Item) bool {
	if filter.UserID != nil && it.UserID != *filter.UserID {
		return false
	}
	if filter.Status != nil && !it.HasStatus(*filter.Status) {
		return false
	}
	if filter.Category != nil && (it.Category == nil || *it.Category != *filter.Category) {
		return false
	}
	if filter.SerialNumber != nil && it.SerialNumber != *filter.SerialNumber {
		return false
	}
	if filter.CreatedSince != nil && it.CreatedAt.Before(*filter.CreatedSince) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		hit := false
		for _, field := range filter.SearchFields {
			var value string
			switch field {
			case "name":
				value = it.Name
			case "serial_number":
				value = it.SerialNumber
			case "description":
				if it.Description != nil {
					value = *it.Description
				}
			case "category":
				if it.Category != nil {
					value = *it.Category
				}
			}
			if value != "" && strings.Contains(strings.ToLower(value), needle) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}
