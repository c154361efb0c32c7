package outbound

import (
	"context"
	"time"

	"itemtrace-registry-service/internal/domain/item"

	"github.com/google/uuid"
)

// ItemFilter is the predicate set understood by the record store. Nil
// pointer fields are not applied. Search is a case-insensitive substring
// matched with OR semantics across SearchFields.
type ItemFilter struct {
	UserID       *uuid.UUID
	Status       *item.Status
	Category     *string
	SerialNumber *string
	Search       string
	SearchFields []string
	CreatedSince *time.Time
}

// ItemRepository defines the interface for item data operations. List
// results are always ordered by created_at descending.
type ItemRepository interface {
	// Insert stores a new item and returns the stored row. Adapters that
	// cannot return the inserted row may return (nil, nil).
	Insert(ctx context.Context, it *item.Item) (*item.Item, error)

	// GetByID retrieves an item by id scoped to its owner
	GetByID(ctx context.Context, id, userID uuid.UUID) (*item.Item, error)

	// List retrieves a page of items matching the filter
	List(ctx context.Context, filter ItemFilter, limit, offset int) ([]*item.Item, error)

	// Count returns the exact number of items matching the filter
	Count(ctx context.Context, filter ItemFilter) (int, error)

	// Update applies a patch to an owner-scoped item and returns the
	// updated row. Adapters that cannot return it may return (nil, nil).
	Update(ctx context.Context, id, userID uuid.UUID, patch *item.Patch) (*item.Item, error)

	// Delete removes an owner-scoped item
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// LatestUpdatedAt returns the most recent updated_at for a user's
	// items, or nil when the user has none
	LatestUpdatedAt(ctx context.Context, userID uuid.UUID) (*time.Time, error)

	// CategoriesByUser returns the category column of all of a user's
	// items, unset categories excluded
	CategoriesByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
}
