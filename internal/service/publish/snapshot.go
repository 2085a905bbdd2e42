package publish

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 2. SnapshotItem
// ---------------------------------------------------------------------------

// SnapshotItem captures the item's current live state, variants included,
// and stores it as the snapshot of the given type. The existing snapshot
// for the same (item, type) pair is replaced wholesale, never merged.
func (s *Service) SnapshotItem(ctx context.Context, itemID uuid.UUID, snapType domain.SnapshotType) (*domain.MenuItemSnapshot, error) {
	if !snapType.Valid() {
		return nil, domain.NewValidationError("snapshot_type", "unknown type")
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	variants, err := s.variants.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get variants: %w", err)
	}
	item.Variants = variants

	snap := domain.NewSnapshotFromItem(*item, snapType)

	stored, err := s.snapshots.Upsert(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("upsert snapshot: %w", err)
	}

	return stored, nil
}
