package item

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"itemtrace-registry-service/internal/domain/shared"
)

// ValidatePayload extracts and normalizes item fields from a raw request
// payload. When requireRequired is set, name and serial_number must be
// non-empty after trimming. An invalid status fails the whole call; an
// unparsable fee is silently dropped. The returned patch always carries a
// fresh UpdatedAt stamp.
func ValidatePayload(data map[string]any, requireRequired bool) (*Patch, error) {
	name := strings.TrimSpace(asString(data["name"]))
	serialNumber := strings.TrimSpace(asString(data["serial_number"]))

	if requireRequired {
		var missing []string
		if name == "" {
			missing = append(missing, "name")
		}
		if serialNumber == "" {
			missing = append(missing, "serial_number")
		}
		if len(missing) > 0 {
			return nil, &shared.MissingFieldsError{Fields: missing}
		}
	}

	patch := &Patch{}
	if name != "" {
		patch.Name = &name
	}
	if serialNumber != "" {
		patch.SerialNumber = &serialNumber
	}

	// Optional fields: key presence decides, empty values still overwrite
	if v, ok := data["description"]; ok {
		patch.Description = stringPtr(v)
	}
	if v, ok := data["category"]; ok {
		patch.Category = stringPtr(v)
	}
	if v, ok := data["contact_info"]; ok {
		patch.ContactInfo = stringPtr(v)
	}
	if v, ok := data["owner"]; ok {
		patch.Owner = stringPtr(v)
	}
	if v, ok := data["image_url"]; ok {
		patch.ImageURL = stringPtr(v)
	}
	if v, ok := data["images"]; ok {
		patch.Images = coerceImages(v)
	}
	if v, ok := data["fee"]; ok {
		patch.Fee = coerceFee(v)
	}
	if v, ok := data["status"]; ok {
		status, valid := ParseStatus(strings.ToLower(asString(v)))
		if !valid {
			return nil, shared.ErrInvalidStatus
		}
		patch.Status = &status
	}

	// Always stamp the mutation time
	patch.UpdatedAt = time.Now().UTC()

	return patch, nil
}

// coerceImages accepts a list or a comma-separated string, anything else
// becomes absent
func coerceImages(value any) []string {
	switch v := value.(type) {
	case []string:
		if len(v) == 0 {
			return nil
		}
		return v
	case []any:
		if len(v) == 0 {
			return nil
		}
		images := make([]string, 0, len(v))
		for _, element := range v {
			images = append(images, asString(element))
		}
		return images
	case string:
		var images []string
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				images = append(images, trimmed)
			}
		}
		return images
	default:
		return nil
	}
}

// coerceFee attempts a numeric conversion, failures become absent
func coerceFee(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case float32:
		fee := float64(v)
		return &fee
	case int:
		fee := float64(v)
		return &fee
	case int64:
		fee := float64(v)
		return &fee
	case json.Number:
		fee, err := v.Float64()
		if err != nil {
			return nil
		}
		return &fee
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		fee, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		return &fee
	default:
		return nil
	}
}

// asString renders a payload value as a string, nil becomes empty
func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func stringPtr(value any) *string {
	s := asString(value)
	return &s
}
