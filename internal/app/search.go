package app

import (
	"context"
	"strings"

	"itemtrace-registry-service/internal/domain/item"
	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/inbound"
	"itemtrace-registry-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// registrySearchFields are OR-matched by the registry-wide search, a wider
// field set than the owner-scoped list
var registrySearchFields = []string{"name", "description", "category", "serial_number"}

// RegistryService implements the registry-wide public search use case.
// By design it applies no ownership scoping.
type RegistryService struct {
	itemRepo outbound.ItemRepository
	logger   zerolog.Logger
}
type RegistryServiceParams struct {
	ItemRepo outbound.ItemRepository
	Logger   zerolog.Logger
}

// NewRegistryService creates a new registry search service
func NewRegistryService(params RegistryServiceParams) *RegistryService {
	return &RegistryService{
		itemRepo: params.ItemRepo,
		logger:   params.Logger.With().Str("component", "registry_service").Logger(),
	}
}

// Search runs a cross-user filtered search over the whole registry
func (service *RegistryService) Search(ctx context.Context, req inbound.SearchRequest) (*inbound.ItemPage, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = inbound.DefaultPageSize
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	var filter outbound.ItemFilter

	if query := strings.TrimSpace(req.Query); query != "" {
		filter.Search = query
		filter.SearchFields = registrySearchFields
	}
	if category := strings.TrimSpace(req.Category); category != "" {
		filter.Category = &category
	}
	if statusValue := strings.ToLower(strings.TrimSpace(req.Status)); statusValue != "" {
		status, valid := item.ParseStatus(statusValue)
		if !valid {
			service.logger.Warn().Str("status", statusValue).Msg("Search rejected, invalid status")
			return nil, shared.ErrInvalidStatus
		}
		filter.Status = &status
	}
	if serialNumber := strings.TrimSpace(req.SerialNumber); serialNumber != "" {
		filter.SerialNumber = &serialNumber
	}

	count, err := service.itemRepo.Count(ctx, filter)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to count search results")
		return nil, err
	}

	items, err := service.itemRepo.List(ctx, filter, limit, offset)
	if err != nil {
		service.logger.Error().Err(err).Msg("Failed to fetch search results")
		return nil, err
	}

	return buildPage(items, count, limit, offset), nil
}
