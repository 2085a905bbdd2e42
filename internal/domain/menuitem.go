package domain

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is the mutable live record for a single dish or product on the menu.
// PublishedAt == nil marks the item as a draft: either never published, or
// edited since its last publish. A published item is assumed to be in sync
// with its stored snapshot.
type MenuItem struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description *string
	Price       float64
	Available   bool
	Tags        []string
	Calories    *int
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []Variant
}

// IsDraft returns true if the item has unpublished edits (or was never published).
func (m *MenuItem) IsDraft() bool {
	return m.PublishedAt == nil
}

// ComparableView flattens the item's comparable fields into a name-keyed
// record suitable for DiffFields. Pointer fields become nil when unset.
func (m *MenuItem) ComparableView() map[string]any {
	view := map[string]any{
		FieldName:      m.Name,
		FieldPrice:     m.Price,
		FieldAvailable: m.Available,
		FieldTags:      append([]string(nil), m.Tags...),
	}
	if m.Description != nil {
		view[FieldDescription] = *m.Description
	} else {
		view[FieldDescription] = nil
	}
	if m.Calories != nil {
		view[FieldCalories] = *m.Calories
	} else {
		view[FieldCalories] = nil
	}
	return view
}

// Variant is a child record of a MenuItem: a size, portion, or preparation
// option with its own price and availability. Variants carry no publish flag
// of their own; they are versioned as part of their parent's snapshot.
type Variant struct {
	ID         uuid.UUID
	MenuItemID uuid.UUID
	Name       string
	Price      float64
	Available  bool
	Position   int
	CreatedAt  time.Time
}

// Category groups menu items for display. The scanner joins the category
// name onto draft items as denormalized metadata.
type Category struct {
	ID       uuid.UUID
	Name     string
	Position int
}

// DraftMenuItem is a menu item in draft state with display metadata already
// resolved via join, so callers never fetch categories separately.
type DraftMenuItem struct {
	MenuItem
	CategoryName string
}
