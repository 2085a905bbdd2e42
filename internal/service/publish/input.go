package publish

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// PublishBatchInput holds the parameters for publishing a batch of items.
type PublishBatchInput struct {
	ItemIDs []uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *PublishBatchInput) Validate(maxBatchSize int) error {
	var errs []domain.FieldError

	if len(i.ItemIDs) == 0 {
		errs = append(errs, domain.FieldError{Field: "item_ids", Message: "required"})
	}
	if len(i.ItemIDs) > maxBatchSize {
		errs = append(errs, domain.FieldError{
			Field:   "item_ids",
			Message: fmt.Sprintf("too many (max %d)", maxBatchSize),
		})
	}
	for _, id := range i.ItemIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "item_ids", Message: "contains nil UUID"})
			break
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RevertInput holds the parameters for reverting a single item.
type RevertInput struct {
	ItemID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *RevertInput) Validate() error {
	if i.ItemID == uuid.Nil {
		return domain.NewValidationError("item_id", "required")
	}
	return nil
}
