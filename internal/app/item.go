package app

import (
	"context"
	"strings"

	"itemtrace-registry-service/internal/domain/item"
	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/inbound"
	"itemtrace-registry-service/internal/ports/outbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// listSearchFields are OR-matched by the owner-scoped list query
var listSearchFields = []string{"name", "description"}

// ItemService implements the ownership-scoped item lifecycle use cases
type ItemService struct {
	itemRepo outbound.ItemRepository
	logger   zerolog.Logger
}
type ItemServiceParams struct {
	ItemRepo outbound.ItemRepository
	Logger   zerolog.Logger
}

// NewItemService creates a new item service
func NewItemService(params ItemServiceParams) *ItemService {
	return &ItemService{
		itemRepo: params.ItemRepo,
		logger:   params.Logger.With().Str("component", "item_service").Logger(),
	}
}

// CreateItem validates a payload and stores a new item for the user
func (service *ItemService) CreateItem(ctx context.Context, userID uuid.UUID, payload map[string]any) (*item.Item, error) {
	service.logger.Info().
		Str("user_id", userID.String()).
		Msg("Attempting to create item")

	patch, err := item.ValidatePayload(payload, true)
	if err != nil {
		service.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("Item payload rejected")
		return nil, err
	}

	// Ownership is injected server-side, never taken from the payload
	newItem := &item.Item{
		ID:     uuid.New(),
		UserID: userID,
	}
	patch.Apply(newItem)

	inserted, err := service.itemRepo.Insert(ctx, newItem)
	if err != nil {
		service.logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to insert item")
		return nil, err
	}

	// Some adapters do not return the inserted row, re-select the newest
	// row for this user and serial number
	if inserted == nil {
		serial := newItem.SerialNumber
		rows, err := service.itemRepo.List(ctx, outbound.ItemFilter{
			UserID:       &userID,
			SerialNumber: &serial,
		}, 1, 0)
		if err != nil {
			service.logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to re-select inserted item")
			return nil, err
		}
		if len(rows) > 0 {
			inserted = rows[0]
		} else {
			inserted = newItem
		}
	}

	service.logger.Info().
		Str("user_id", userID.String()).
		Str("item_id", inserted.ID.String()).
		Msg("Item created")

	return inserted, nil
}

// GetItem retrieves a single item owned by the user. A record owned by
// someone else is indistinguishable from a missing one.
func (service *ItemService) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*item.Item, error) {
	found, err := service.itemRepo.GetByID(ctx, itemID, userID)
	if err != nil {
		if err != shared.ErrItemNotFound {
			service.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to get item")
		}
		return nil, err
	}

	return found, nil
}

// ListItems retrieves a page of the user's items, newest first, with an
// exact total count computed under the same filter
func (service *ItemService) ListItems(ctx context.Context, userID uuid.UUID, req inbound.ListItemsRequest) (*inbound.ItemPage, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = inbound.DefaultPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	filter := outbound.ItemFilter{UserID: &userID}
	if query := strings.TrimSpace(req.Query); query != "" {
		filter.Search = query
		filter.SearchFields = listSearchFields
	}

	count, err := service.itemRepo.Count(ctx, filter)
	if err != nil {
		service.logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to count items")
		return nil, err
	}

	items, err := service.itemRepo.List(ctx, filter, limit, offset)
	if err != nil {
		service.logger.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list items")
		return nil, err
	}

	return buildPage(items, count, limit, offset), nil
}

// UpdateItem applies a validated patch to an item owned by the user
func (service *ItemService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, payload map[string]any, full bool) (*item.Item, error) {
	service.logger.Info().
		Str("user_id", userID.String()).
		Str("item_id", itemID.String()).
		Bool("full", full).
		Msg("Attempting to update item")

	// Ensure the item exists and belongs to the user before validating
	if _, err := service.itemRepo.GetByID(ctx, itemID, userID); err != nil {
		return nil, err
	}

	patch, err := item.ValidatePayload(payload, full)
	if err != nil {
		service.logger.Warn().Err(err).Str("item_id", itemID.String()).Msg("Update payload rejected")
		return nil, err
	}

	if patch.IsEmpty() {
		service.logger.Warn().Str("item_id", itemID.String()).Msg("Update payload sets no fields")
		return nil, shared.ErrNoFieldsToUpdate
	}

	updated, err := service.itemRepo.Update(ctx, itemID, userID, patch)
	if err != nil {
		if err != shared.ErrItemNotFound {
			service.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to update item")
		}
		return nil, err
	}

	// Some adapters do not return the updated row, re-fetch it
	if updated == nil {
		updated, err = service.itemRepo.GetByID(ctx, itemID, userID)
		if err != nil {
			return nil, err
		}
	}

	service.logger.Info().
		Str("user_id", userID.String()).
		Str("item_id", itemID.String()).
		Msg("Item updated")

	return updated, nil
}

// DeleteItem removes an item owned by the user and returns its id
func (service *ItemService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (uuid.UUID, error) {
	// Ensure ownership and existence first
	if _, err := service.itemRepo.GetByID(ctx, itemID, userID); err != nil {
		return uuid.Nil, err
	}

	if err := service.itemRepo.Delete(ctx, itemID, userID); err != nil {
		if err != shared.ErrItemNotFound {
			service.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Failed to delete item")
		}
		return uuid.Nil, err
	}

	service.logger.Info().
		Str("user_id", userID.String()).
		Str("item_id", itemID.String()).
		Msg("Item deleted")

	return itemID, nil
}

// buildPage computes the next/previous offset cursors around a result page
func buildPage(items []*item.Item, count, limit, offset int) *inbound.ItemPage {
	if items == nil {
		items = []*item.Item{}
	}

	page := &inbound.ItemPage{
		Items: items,
		Count: count,
	}

	if offset+limit < count {
		next := offset + limit
		page.Next = &next
	}
	if offset > 0 {
		previous := offset - limit
		page.Previous = &previous
	}

	return page
}
