package httpapi

import (
	"itemtrace-registry-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SearchHandler serves the public registry-wide search endpoint
type SearchHandler struct {
	registry inbound.RegistryService
	logger   zerolog.Logger
}
type SearchHandlerParams struct {
	Registry inbound.RegistryService
	Logger   zerolog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(params SearchHandlerParams) *SearchHandler {
	return &SearchHandler{
		registry: params.Registry,
		logger:   params.Logger.With().Str("component", "search_handler").Logger(),
	}
}

// Search runs a cross-user search over the whole registry. No
// authentication required by design.
func (handler *SearchHandler) Search(c *gin.Context) {
	var req inbound.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An empty body searches everything
		req = inbound.SearchRequest{}
	}

	page, err := handler.registry.Search(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to search registry")
		return
	}

	respondPage(c, page, "Registry search completed.")
}
