package inbound

import (
	"context"
	"time"

	"itemtrace-registry-service/internal/domain/item"

	"github.com/google/uuid"
)

// DefaultPageSize is applied when a request does not specify a limit
const DefaultPageSize = 30

// ItemService defines the ownership-scoped item lifecycle operations
type ItemService interface {
	// CreateItem validates a payload and stores a new item for the user
	CreateItem(ctx context.Context, userID uuid.UUID, payload map[string]any) (*item.Item, error)

	// GetItem retrieves a single item owned by the user
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (*item.Item, error)

	// ListItems retrieves a page of the user's items
	ListItems(ctx context.Context, userID uuid.UUID, req ListItemsRequest) (*ItemPage, error)

	// UpdateItem applies a validated patch to an item owned by the user.
	// When full is set, name and serial_number are required in the payload.
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, payload map[string]any, full bool) (*item.Item, error)

	// DeleteItem removes an item owned by the user and returns its id
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (uuid.UUID, error)
}

// RegistryService defines the registry-wide public search operation
type RegistryService interface {
	// Search runs a cross-user filtered search over the whole registry
	Search(ctx context.Context, req SearchRequest) (*ItemPage, error)
}

// AnalyticsService defines the per-user summary aggregation
type AnalyticsService interface {
	// Summarize computes the analytics summary for a user's items
	Summarize(ctx context.Context, userID uuid.UUID) (*AnalyticsSummary, error)
}

// PaymentService defines the fixed-fee payment verification protocol
type PaymentService interface {
	// InitiatePayment starts a fixed-fee transaction for the user
	InitiatePayment(ctx context.Context, userID uuid.UUID, email string) (*PaymentInitiation, error)

	// VerifyPayment checks a transaction by reference against the gateway
	VerifyPayment(ctx context.Context, userID uuid.UUID, reference string) (*PaymentVerification, error)
}

// request to list a user's items
type ListItemsRequest struct {
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Query  string `json:"query"`
}

// request to search the whole registry
type SearchRequest struct {
	Query        string `json:"query"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	SerialNumber string `json:"serial_number"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
}

// ItemPage is one page of items plus pagination cursors. Next and
// Previous are offsets into the same query, nil when out of range.
type ItemPage struct {
	Items    []*item.Item
	Count    int
	Next     *int
	Previous *int
}

// StatusTotals holds the per-status item counts for a user
type StatusTotals struct {
	Total   int `json:"total"`
	Safe    int `json:"safe"`
	Stolen  int `json:"stolen"`
	Unknown int `json:"unknown"`
}

// StatusRatios holds per-status percentages rounded to two decimals
type StatusRatios struct {
	Safe    float64 `json:"safe"`
	Stolen  float64 `json:"stolen"`
	Unknown float64 `json:"unknown"`
}

// RecentActivity holds the 30-day window counts
type RecentActivity struct {
	AddedLast30d  int `json:"added_last_30d"`
	StolenLast30d int `json:"stolen_last_30d"`
}

// CategoryCount is one entry of the top-categories ranking
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// AnalyticsSummary is the composite per-user analytics result
type AnalyticsSummary struct {
	Totals        StatusTotals    `json:"totals"`
	Ratios        StatusRatios    `json:"ratios"`
	LastUpdatedAt *time.Time      `json:"last_updated_at"`
	Recent        RecentActivity  `json:"recent"`
	TopCategories []CategoryCount `json:"top_categories"`
	RecentItems   []item.Summary  `json:"recent_items"`
}

// PaymentInitiation is returned to the caller to complete the charge
type PaymentInitiation struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
	Amount           int    `json:"amount"`
}

// PaymentVerification is the outcome of a verify-by-reference call
type PaymentVerification struct {
	Verified        bool   `json:"verified"`
	Status          string `json:"status"`
	Amount          int    `json:"amount"`
	Reference       string `json:"reference"`
	GatewayResponse string `json:"gateway_response"`
	PaidAt          string `json:"paid_at"`
	Channel         string `json:"channel"`
}
