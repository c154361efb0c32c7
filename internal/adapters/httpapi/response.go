package httpapi

import (
	"errors"
	"net/http"

	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape of every endpoint
type Envelope struct {
	Data    any    `json:"data"`
	Error   any    `json:"error"`
	Message string `json:"message,omitempty"`
}

// PagedEnvelope extends the envelope with pagination cursors. Next and
// Previous serialize as null when out of range.
type PagedEnvelope struct {
	Data     any    `json:"data"`
	Error    any    `json:"error"`
	Message  string `json:"message,omitempty"`
	Count    int    `json:"count"`
	Next     *int   `json:"next"`
	Previous *int   `json:"previous"`
}

func respond(c *gin.Context, code int, data any, message string) {
	c.JSON(code, Envelope{Data: data, Message: message})
}

func respondPage(c *gin.Context, page *inbound.ItemPage, message string) {
	c.JSON(http.StatusOK, PagedEnvelope{
		Data:     page.Items,
		Message:  message,
		Count:    page.Count,
		Next:     page.Next,
		Previous: page.Previous,
	})
}

func respondError(c *gin.Context, code int, detail any, message string) {
	c.JSON(code, Envelope{Error: detail, Message: message})
}

// respondServiceError maps a service error onto the status taxonomy.
// failMessage only accompanies unexpected failures.
func respondServiceError(c *gin.Context, err error, failMessage string) {
	var missingFields *shared.MissingFieldsError
	var gatewayErr *shared.GatewayError

	switch {
	case errors.As(err, &missingFields):
		respondError(c, http.StatusBadRequest, gin.H{
			"detail": "Missing required field(s)",
			"fields": missingFields.Fields,
		}, "")
	case errors.Is(err, shared.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, gin.H{
			"detail": "Invalid status. Must be one of: safe, stolen, unknown",
		}, "")
	case errors.Is(err, shared.ErrInvalidItemID):
		respondError(c, http.StatusBadRequest, gin.H{"detail": "Invalid item id"}, "")
	case errors.Is(err, shared.ErrNoFieldsToUpdate):
		respondError(c, http.StatusBadRequest, gin.H{"detail": "No valid fields to update"}, "")
	case errors.Is(err, shared.ErrEmailRequired):
		respondError(c, http.StatusBadRequest, gin.H{"detail": "Email is required for payment initialization"}, "")
	case errors.Is(err, shared.ErrReferenceRequired):
		respondError(c, http.StatusBadRequest, gin.H{"detail": "reference is required"}, "")
	case errors.Is(err, shared.ErrItemNotFound):
		respondError(c, http.StatusNotFound, gin.H{"detail": "Item not found"}, "Item could not be found.")
	case errors.Is(err, shared.ErrGatewayNotConfigured):
		respondError(c, http.StatusInternalServerError, gin.H{
			"detail": "PAYSTACK_SECRET_KEY not configured on server",
		}, "")
	case errors.As(err, &gatewayErr):
		respondError(c, http.StatusBadRequest, gin.H{"detail": gatewayErr.Message}, gatewayErr.Message)
	default:
		respondError(c, http.StatusInternalServerError, gin.H{"detail": err.Error()}, failMessage)
	}
}
