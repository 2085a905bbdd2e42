package publish

import (
	"time"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// ScanResult contains the outcome of a draft scan. On failure, Success is
// false and Error carries the reason; Items is always non-nil so callers
// can render an empty review list without nil checks.
type ScanResult struct {
	Success bool        `json:"success"`
	Items   []DraftItem `json:"items"`
	Count   int         `json:"count"`
	Error   string      `json:"error,omitempty"`
}

// DraftItem is a single unpublished item prepared for review: identity,
// display metadata, and the field-level changes since the last publish.
type DraftItem struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	CategoryName string               `json:"category_name"`
	IsNew        bool                 `json:"is_new"`
	Changes      []domain.FieldChange `json:"changes"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// PublishResult contains the outcome of a batch publish. Count is the number
// of items actually published; Failed lists per-item errors for the rest.
type PublishResult struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Failed  []BatchError `json:"failed,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// BatchError describes a single failure in a batch publish.
type BatchError struct {
	ID    uuid.UUID `json:"id"`
	Error string    `json:"error"`
}

// RevertResult contains the outcome of a revert operation.
type RevertResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
