// Package snapshot implements the menu item snapshot repository using
// PostgreSQL. The unique key (menu_item_id, snapshot_type) enforces
// at-most-one snapshot per item per type; Upsert replaces on conflict.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/tablecraft/menuhub-backend/internal/adapter/postgres"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// Repo provides snapshot persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new snapshot repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const snapshotColumns = `id, menu_item_id, snapshot_type, name, description,
       price, available, tags, calories, variants_snapshot, published_at, created_at`

const getByItemIDSQL = `
SELECT ` + snapshotColumns + `
FROM menu_item_snapshots
WHERE menu_item_id = $1 AND snapshot_type = $2`

const getForDraftItemsSQL = `
SELECT s.id, s.menu_item_id, s.snapshot_type, s.name, s.description,
       s.price, s.available, s.tags, s.calories, s.variants_snapshot,
       s.published_at, s.created_at
FROM menu_item_snapshots s
JOIN menu_items m ON m.id = s.menu_item_id
WHERE m.published_at IS NULL AND s.snapshot_type = $1`

const upsertSQL = `
INSERT INTO menu_item_snapshots
    (id, menu_item_id, snapshot_type, name, description, price, available,
     tags, calories, variants_snapshot, published_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (menu_item_id, snapshot_type) DO UPDATE SET
    name              = EXCLUDED.name,
    description       = EXCLUDED.description,
    price             = EXCLUDED.price,
    available         = EXCLUDED.available,
    tags              = EXCLUDED.tags,
    calories          = EXCLUDED.calories,
    variants_snapshot = EXCLUDED.variants_snapshot,
    published_at      = EXCLUDED.published_at,
    created_at        = EXCLUDED.created_at
RETURNING ` + snapshotColumns

// variantRecord is the stored JSONB shape of one snapshotted variant.
// Kept separate from domain.Variant so the storage format stays stable.
type variantRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Available bool      `json:"available"`
	Position  int       `json:"position"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByItemID returns the snapshot of the given type for a menu item.
// Returns domain.ErrNotFound if the item has no snapshot of that type.
func (r *Repo) GetByItemID(ctx context.Context, itemID uuid.UUID, snapType domain.SnapshotType) (*domain.MenuItemSnapshot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	row := querier.QueryRow(ctx, getByItemIDSQL, itemID, snapType)

	snap, err := scanSnapshotRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "snapshot", itemID)
	}

	return &snap, nil
}

// GetForDraftItems returns the snapshots of the given type for every item
// currently in draft state, in one query. The scanner issues this
// concurrently with the draft item fetch and joins the results by item id.
func (r *Repo) GetForDraftItems(ctx context.Context, snapType domain.SnapshotType) ([]domain.MenuItemSnapshot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, getForDraftItemsSQL, snapType)
	if err != nil {
		return nil, fmt.Errorf("get snapshots for draft items: %w", err)
	}
	defer rows.Close()

	var snaps []domain.MenuItemSnapshot
	for rows.Next() {
		snap, scanErr := scanSnapshotFromRows(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("get snapshots for draft items: %w", scanErr)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get snapshots for draft items: %w", err)
	}

	if snaps == nil {
		snaps = []domain.MenuItemSnapshot{}
	}

	return snaps, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert stores the snapshot, fully replacing any existing snapshot for the
// same (menu_item_id, snapshot_type) key. Partial snapshots are not supported.
func (r *Repo) Upsert(ctx context.Context, snap domain.MenuItemSnapshot) (*domain.MenuItemSnapshot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	variantsJSON, err := marshalVariants(snap.Variants)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: marshal variants: %w", snap.MenuItemID, err)
	}

	id := snap.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := snap.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	row := querier.QueryRow(ctx, upsertSQL,
		id, snap.MenuItemID, snap.SnapshotType, snap.Name, snap.Description,
		snap.Price, snap.Available, snap.Tags, snap.Calories, variantsJSON,
		snap.PublishedAt, createdAt,
	)

	stored, err := scanSnapshotRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "snapshot", snap.MenuItemID)
	}

	return &stored, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type snapshotColumnSet struct {
	id           uuid.UUID
	menuItemID   uuid.UUID
	snapshotType string
	name         string
	description  pgtype.Text
	price        float64
	available    bool
	tags         []string
	calories     pgtype.Int4
	variantsJSON []byte
	publishedAt  pgtype.Timestamptz
	createdAt    time.Time
}

func (c *snapshotColumnSet) fields() []any {
	return []any{
		&c.id, &c.menuItemID, &c.snapshotType, &c.name, &c.description,
		&c.price, &c.available, &c.tags, &c.calories, &c.variantsJSON,
		&c.publishedAt, &c.createdAt,
	}
}

func (c *snapshotColumnSet) toDomain() (domain.MenuItemSnapshot, error) {
	variants, err := unmarshalVariants(c.variantsJSON, c.menuItemID)
	if err != nil {
		return domain.MenuItemSnapshot{}, err
	}

	snap := domain.MenuItemSnapshot{
		ID:           c.id,
		MenuItemID:   c.menuItemID,
		SnapshotType: domain.SnapshotType(c.snapshotType),
		Name:         c.name,
		Price:        c.price,
		Available:    c.available,
		Tags:         c.tags,
		Variants:     variants,
		CreatedAt:    c.createdAt,
	}
	if c.description.Valid {
		snap.Description = &c.description.String
	}
	if c.calories.Valid {
		cal := int(c.calories.Int32)
		snap.Calories = &cal
	}
	if c.publishedAt.Valid {
		snap.PublishedAt = &c.publishedAt.Time
	}
	if snap.Tags == nil {
		snap.Tags = []string{}
	}
	return snap, nil
}

func scanSnapshotRow(row pgx.Row) (domain.MenuItemSnapshot, error) {
	var c snapshotColumnSet
	if err := row.Scan(c.fields()...); err != nil {
		return domain.MenuItemSnapshot{}, err
	}
	return c.toDomain()
}

func scanSnapshotFromRows(rows pgx.Rows) (domain.MenuItemSnapshot, error) {
	var c snapshotColumnSet
	if err := rows.Scan(c.fields()...); err != nil {
		return domain.MenuItemSnapshot{}, err
	}
	return c.toDomain()
}

// ---------------------------------------------------------------------------
// JSONB mapping
// ---------------------------------------------------------------------------

func marshalVariants(variants []domain.Variant) ([]byte, error) {
	records := make([]variantRecord, len(variants))
	for i, v := range variants {
		records[i] = variantRecord{
			ID:        v.ID,
			Name:      v.Name,
			Price:     v.Price,
			Available: v.Available,
			Position:  v.Position,
		}
	}
	return json.Marshal(records)
}

func unmarshalVariants(data []byte, itemID uuid.UUID) ([]domain.Variant, error) {
	if len(data) == 0 {
		return []domain.Variant{}, nil
	}

	var records []variantRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal variants_snapshot: %w", err)
	}

	variants := make([]domain.Variant, len(records))
	for i, rec := range records {
		variants[i] = domain.Variant{
			ID:         rec.ID,
			MenuItemID: itemID,
			Name:       rec.Name,
			Price:      rec.Price,
			Available:  rec.Available,
			Position:   rec.Position,
		}
	}
	return variants, nil
}
