package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/internal/domain"
	"github.com/tablecraft/menuhub-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 4. RevertItem
// ---------------------------------------------------------------------------

// RevertItem discards an item's unpublished edits by restoring the stored
// published snapshot: scalar fields and the publish timestamp go back onto
// the live row, and the variant collection is replaced wholesale with the
// snapshotted one. Restored variants get fresh IDs.
func (s *Service) RevertItem(ctx context.Context, input RevertInput) RevertResult {
	if err := input.Validate(); err != nil {
		return RevertResult{Success: false, Error: err.Error()}
	}

	actorID, _ := ctxutil.ActorIDFromCtx(ctx)

	snap, err := s.snapshots.GetByItemID(ctx, input.ItemID, domain.SnapshotTypePublished)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return RevertResult{Success: false, Error: "menu item has never been published"}
		}
		s.log.ErrorContext(ctx, "revert failed", "item_id", input.ItemID, "error", err)
		return RevertResult{Success: false, Error: err.Error()}
	}

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.items.RestoreFromSnapshot(txCtx, *snap); err != nil {
			return fmt.Errorf("restore item: %w", err)
		}

		if _, err := s.variants.ReplaceForItem(txCtx, input.ItemID, snap.Variants); err != nil {
			return fmt.Errorf("replace variants: %w", err)
		}

		record := domain.AuditRecord{
			EntityType: domain.EntityTypeMenuItem,
			EntityID:   &input.ItemID,
			Action:     domain.AuditActionRevert,
			Changes: map[string]any{
				"snapshot_id": snap.ID,
				"variants":    len(snap.Variants),
			},
		}
		if actorID != uuid.Nil {
			record.ActorID = &actorID
		}
		if _, err := s.audit.Create(txCtx, record); err != nil {
			return fmt.Errorf("audit revert: %w", err)
		}

		return nil
	})
	if txErr != nil {
		s.log.ErrorContext(ctx, "revert failed", "item_id", input.ItemID, "error", txErr)
		return RevertResult{Success: false, Error: txErr.Error()}
	}

	s.log.InfoContext(ctx, "item reverted", "item_id", input.ItemID)

	return RevertResult{Success: true, Message: "menu item restored to last published state"}
}
