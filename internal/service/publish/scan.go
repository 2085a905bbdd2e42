package publish

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// 1. ScanDrafts
// ---------------------------------------------------------------------------

// ScanDrafts finds every unpublished menu item and computes its field-level
// changes against the stored published snapshot. Items and snapshots are
// loaded concurrently; a failure in either degrades the whole scan to an
// unsuccessful result rather than a partial list.
func (s *Service) ScanDrafts(ctx context.Context) ScanResult {
	var (
		drafts []domain.DraftMenuItem
		snaps  []domain.MenuItemSnapshot
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		drafts, err = s.items.FindDrafts(gCtx, s.cfg.ScanLimit)
		if err != nil {
			return fmt.Errorf("find drafts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snaps, err = s.snapshots.GetForDraftItems(gCtx, domain.SnapshotTypePublished)
		if err != nil {
			return fmt.Errorf("load snapshots: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "draft scan failed", "error", err)
		return ScanResult{Success: false, Items: []DraftItem{}, Error: err.Error()}
	}

	snapByItem := make(map[uuid.UUID]*domain.MenuItemSnapshot, len(snaps))
	for i := range snaps {
		snapByItem[snaps[i].MenuItemID] = &snaps[i]
	}

	items := make([]DraftItem, 0, len(drafts))
	for i := range drafts {
		d := &drafts[i]
		item := DraftItem{
			ID:           d.ID,
			Name:         d.Name,
			CategoryName: d.CategoryName,
			Changes:      []domain.FieldChange{},
			UpdatedAt:    d.UpdatedAt,
		}

		snap, ok := snapByItem[d.ID]
		if !ok {
			// Never published before: the whole item is new, there is no
			// baseline to diff against.
			item.IsNew = true
		} else {
			item.Changes = domain.DiffFields(d.ComparableView(), snap.ComparableView(), domain.ComparableFields)
		}

		items = append(items, item)
	}

	s.log.InfoContext(ctx, "draft scan complete", "drafts", len(items))

	return ScanResult{Success: true, Items: items, Count: len(items)}
}
