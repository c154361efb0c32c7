package httpapi

import (
	"net/http"
	"strconv"

	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ItemHandler serves the ownership-scoped item endpoints
type ItemHandler struct {
	items  inbound.ItemService
	logger zerolog.Logger
}
type ItemHandlerParams struct {
	Items  inbound.ItemService
	Logger zerolog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(params ItemHandlerParams) *ItemHandler {
	return &ItemHandler{
		items:  params.Items,
		logger: params.Logger.With().Str("component", "item_handler").Logger(),
	}
}

// List returns a page of the caller's items, optionally filtered by a
// free-text query over name and description
func (handler *ItemHandler) List(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	page, err := handler.items.ListItems(c.Request.Context(), userID, inbound.ListItemsRequest{
		Limit:  parseIntDefault(c.Query("limit"), inbound.DefaultPageSize),
		Offset: parseIntDefault(c.Query("offset"), 0),
		Query:  c.Query("query"),
	})
	if err != nil {
		respondServiceError(c, err, "An unknown error occurred")
		return
	}

	respondPage(c, page, "")
}

// Get returns a single item owned by the caller
func (handler *ItemHandler) Get(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	itemID, err := parseItemID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "")
		return
	}

	found, err := handler.items.GetItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondServiceError(c, err, "An unknown error occurred")
		return
	}

	respond(c, http.StatusOK, found, "Item retrieved successfully.")
}

// Create registers a new item for the caller
func (handler *ItemHandler) Create(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	payload := map[string]any{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, gin.H{"detail": "Invalid payload"}, "")
		return
	}

	created, err := handler.items.CreateItem(c.Request.Context(), userID, payload)
	if err != nil {
		respondServiceError(c, err, "Failed to create item")
		return
	}

	respond(c, http.StatusCreated, created, "Item created successfully.")
}

// Update applies a partial update to an item owned by the caller. PUT
// additionally requires name and serial_number in the payload; both
// verbs update only the supplied fields.
func (handler *ItemHandler) Update(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	itemID, err := parseItemID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "")
		return
	}

	payload := map[string]any{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		// An empty or malformed body carries no fields to apply
		payload = map[string]any{}
	}

	full := c.Request.Method == http.MethodPut
	updated, err := handler.items.UpdateItem(c.Request.Context(), userID, itemID, payload, full)
	if err != nil {
		respondServiceError(c, err, "Failed to update item")
		return
	}

	respond(c, http.StatusOK, updated, "Item updated successfully.")
}

// Delete removes an item owned by the caller
func (handler *ItemHandler) Delete(c *gin.Context) {
	userID, ok := userIDFrom(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	itemID, err := parseItemID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "")
		return
	}

	deletedID, err := handler.items.DeleteItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondServiceError(c, err, "Failed to delete item")
		return
	}

	respond(c, http.StatusOK, gin.H{"id": deletedID}, "Item deleted successfully.")
}

// parseItemID validates a path id as a UUID
func parseItemID(value string) (uuid.UUID, error) {
	itemID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, shared.ErrInvalidItemID
	}
	return itemID, nil
}

// parseIntDefault parses an integer query parameter, falling back to a
// default on absence or garbage
func parseIntDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
