package publish

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 5. ItemHistory
// ---------------------------------------------------------------------------

// ItemHistory returns the most recent audit records for a menu item,
// newest first.
func (s *Service) ItemHistory(ctx context.Context, itemID uuid.UUID) ([]domain.AuditRecord, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item_id", "required")
	}

	records, err := s.audit.GetByEntity(ctx, domain.EntityTypeMenuItem, itemID, s.cfg.AuditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	return records, nil
}
