package item

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the registry status of an item
type Status string

const (
	StatusSafe    Status = "safe"
	StatusStolen  Status = "stolen"
	StatusUnknown Status = "unknown"
)

// ParseStatus validates a raw status value against the allowed set
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusSafe, StatusStolen, StatusUnknown:
		return Status(value), true
	default:
		return "", false
	}
}

// Item represents a registered item owned by a user
type Item struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Name         string     `json:"name"`
	SerialNumber string     `json:"serial_number"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category"`
	ContactInfo  *string    `json:"contact_info"`
	Owner        *string    `json:"owner"`
	ImageURL     *string    `json:"image_url"`
	Images       []string   `json:"images"`
	Fee          *float64   `json:"fee"`
	Status       *Status    `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasStatus returns true if the item carries the given status
func (i *Item) HasStatus(s Status) bool {
	return i.Status != nil && *i.Status == s
}

// Summary is the reduced projection used for recent-item listings
type Summary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Status       *Status   `json:"status"`
	Category     *string   `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	ImageURL     *string   `json:"image_url"`
	SerialNumber string    `json:"serial_number"`
}

// Summarize projects the item to its summary fields
func (i *Item) Summarize() Summary {
	return Summary{
		ID:           i.ID,
		Name:         i.Name,
		Status:       i.Status,
		Category:     i.Category,
		CreatedAt:    i.CreatedAt,
		ImageURL:     i.ImageURL,
		SerialNumber: i.SerialNumber,
	}
}

// Patch is a normalized partial item record produced by ValidatePayload.
// A nil field means "leave unchanged"; a non-nil field overwrites, even
// when it points at an empty value.
type Patch struct {
	Name         *string
	SerialNumber *string
	Description  *string
	Category     *string
	ContactInfo  *string
	Owner        *string
	ImageURL     *string
	Images       []string
	Fee          *float64
	Status       *Status
	UpdatedAt    time.Time
}

// IsEmpty returns true when the patch sets no item field
func (p *Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.SerialNumber == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.ContactInfo == nil &&
		p.Owner == nil &&
		p.ImageURL == nil &&
		p.Images == nil &&
		p.Fee == nil &&
		p.Status == nil
}

// Apply writes the patch onto an item
func (p *Patch) Apply(i *Item) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.SerialNumber != nil {
		i.SerialNumber = *p.SerialNumber
	}
	if p.Description != nil {
		i.Description = p.Description
	}
	if p.Category != nil {
		i.Category = p.Category
	}
	if p.ContactInfo != nil {
		i.ContactInfo = p.ContactInfo
	}
	if p.Owner != nil {
		i.Owner = p.Owner
	}
	if p.ImageURL != nil {
		i.ImageURL = p.ImageURL
	}
	if p.Images != nil {
		i.Images = p.Images
	}
	if p.Fee != nil {
		i.Fee = p.Fee
	}
	if p.Status != nil {
		i.Status = p.Status
	}
	i.UpdatedAt = p.UpdatedAt
}
