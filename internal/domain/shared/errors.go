package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Domain-specific errors
var (
	// Item errors
	ErrItemNotFound     = errors.New("item not found")
	ErrInvalidItemID    = errors.New("invalid item id")
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")

	// Validation errors
	ErrInvalidStatus = errors.New("invalid status, must be one of: safe, stolen, unknown")

	// Payment errors
	ErrEmailRequired        = errors.New("email is required for payment initialization")
	ErrReferenceRequired    = errors.New("reference is required")
	ErrGatewayNotConfigured = errors.New("payment gateway secret key not configured on server")
)

// MissingFieldsError reports required item fields absent from a payload.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required field(s): %s", strings.Join(e.Fields, ", "))
}

// GatewayError carries a failure message reported by the payment gateway.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return e.Message
}
