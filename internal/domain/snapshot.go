package domain

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotType distinguishes the stored copies of a menu item.
// Only SnapshotTypePublished is actively used by the publish workflow.
type SnapshotType string

const (
	SnapshotTypePublished SnapshotType = "published"
	SnapshotTypeDraft     SnapshotType = "draft"
)

// Valid reports whether the snapshot type is one of the known values.
func (t SnapshotType) Valid() bool {
	return t == SnapshotTypePublished || t == SnapshotTypeDraft
}

// MenuItemSnapshot is a stored copy of a menu item's comparable fields and
// its full variant collection at the moment of the last publish. At most one
// snapshot exists per (MenuItemID, SnapshotType) pair; a new publish replaces
// the previous snapshot wholesale, it never merges into it.
type MenuItemSnapshot struct {
	ID           uuid.UUID
	MenuItemID   uuid.UUID
	SnapshotType SnapshotType

	Name        string
	Description *string
	Price       float64
	Available   bool
	Tags        []string
	Calories    *int

	// Variants is a point-in-time copy of the item's variant rows, not a
	// set of live references. Mutating live variants never alters it.
	Variants []Variant

	// PublishedAt records the item's publish timestamp as of snapshot time.
	// Revert restores this value onto the live item.
	PublishedAt *time.Time
	CreatedAt   time.Time
}

// NewSnapshotFromItem builds a snapshot of the item's current live state,
// copying the variant collection so later edits cannot leak into it.
func NewSnapshotFromItem(item MenuItem, snapType SnapshotType) MenuItemSnapshot {
	snap := MenuItemSnapshot{
		ID:           uuid.New(),
		MenuItemID:   item.ID,
		SnapshotType: snapType,
		Name:         item.Name,
		Price:        item.Price,
		Available:    item.Available,
		Tags:         append([]string(nil), item.Tags...),
		Variants:     append([]Variant(nil), item.Variants...),
		CreatedAt:    time.Now().UTC(),
	}
	if item.Description != nil {
		d := *item.Description
		snap.Description = &d
	}
	if item.Calories != nil {
		c := *item.Calories
		snap.Calories = &c
	}
	if item.PublishedAt != nil {
		p := *item.PublishedAt
		snap.PublishedAt = &p
	}
	return snap
}

// ComparableView flattens the snapshot's comparable fields into a name-keyed
// record suitable for DiffFields, mirroring MenuItem.ComparableView.
func (s *MenuItemSnapshot) ComparableView() map[string]any {
	view := map[string]any{
		FieldName:      s.Name,
		FieldPrice:     s.Price,
		FieldAvailable: s.Available,
		FieldTags:      append([]string(nil), s.Tags...),
	}
	if s.Description != nil {
		view[FieldDescription] = *s.Description
	} else {
		view[FieldDescription] = nil
	}
	if s.Calories != nil {
		view[FieldCalories] = *s.Calories
	} else {
		view[FieldCalories] = nil
	}
	return view
}
