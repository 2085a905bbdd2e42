package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/internal/domain"
	"github.com/tablecraft/menuhub-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// 3. PublishBatch
// ---------------------------------------------------------------------------

// PublishBatch publishes the given items one by one. For each item the
// current live state is snapshotted first, then the item is flipped to
// published; both steps happen in one transaction so an item is never
// published without a matching snapshot. A failing item does not stop the
// rest of the batch; its error is reported per ID.
func (s *Service) PublishBatch(ctx context.Context, input PublishBatchInput) PublishResult {
	if err := input.Validate(s.cfg.MaxBatchSize); err != nil {
		return PublishResult{Success: false, Error: err.Error()}
	}

	actorID, _ := ctxutil.ActorIDFromCtx(ctx)

	var (
		published int
		failed    []BatchError
	)

	for _, itemID := range input.ItemIDs {
		if err := s.publishOne(ctx, itemID, actorID); err != nil {
			s.log.WarnContext(ctx, "publish item failed", "item_id", itemID, "error", err)
			failed = append(failed, BatchError{ID: itemID, Error: err.Error()})
			continue
		}
		published++
	}

	s.log.InfoContext(ctx, "publish batch complete",
		"requested", len(input.ItemIDs), "published", published, "failed", len(failed))

	return PublishResult{
		Success: len(failed) == 0,
		Count:   published,
		Failed:  failed,
	}
}

// publishOne snapshots and publishes a single item atomically.
func (s *Service) publishOne(ctx context.Context, itemID uuid.UUID, actorID uuid.UUID) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get item: %w", err)
	}

	variants, err := s.variants.GetByItemID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("get variants: %w", err)
	}
	item.Variants = variants

	now := time.Now().UTC()
	item.PublishedAt = &now
	snap := domain.NewSnapshotFromItem(*item, domain.SnapshotTypePublished)

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.snapshots.Upsert(txCtx, snap); err != nil {
			return fmt.Errorf("upsert snapshot: %w", err)
		}

		if err := s.items.MarkPublished(txCtx, itemID, now); err != nil {
			return fmt.Errorf("mark published: %w", err)
		}

		record := domain.AuditRecord{
			EntityType: domain.EntityTypeMenuItem,
			EntityID:   &itemID,
			Action:     domain.AuditActionPublish,
			Changes: map[string]any{
				"snapshot_id":  snap.ID,
				"published_at": now,
			},
		}
		if actorID != uuid.Nil {
			record.ActorID = &actorID
		}
		if _, err := s.audit.Create(txCtx, record); err != nil {
			return fmt.Errorf("audit publish: %w", err)
		}

		return nil
	})
}
