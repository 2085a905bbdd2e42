// Package menuitem implements the MenuItem repository using PostgreSQL.
// Read queries are raw SQL constants; dynamic writes use squirrel.
package menuitem

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	postgres "github.com/tablecraft/menuhub-backend/internal/adapter/postgres"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// Repo provides menu item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new menu item repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT id, category_id, name, description, price, available, tags, calories,
       published_at, created_at, updated_at
FROM menu_items
WHERE id = $1`

const findDraftsSQL = `
SELECT m.id, m.category_id, m.name, m.description, m.price, m.available,
       m.tags, m.calories, m.published_at, m.created_at, m.updated_at,
       c.name AS category_name
FROM menu_items m
JOIN categories c ON c.id = m.category_id
WHERE m.published_at IS NULL
ORDER BY m.updated_at DESC
LIMIT $1`

const markPublishedSQL = `
UPDATE menu_items SET published_at = $2, updated_at = now() WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a single menu item without its variants; callers load
// variants through the variant repository.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	row := querier.QueryRow(ctx, getByIDSQL, id)

	item, err := scanItemRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "menu_item", id)
	}

	return &item, nil
}

// FindDrafts returns all items currently in draft state (published_at IS NULL),
// most recently updated first, with the category name joined on.
func (r *Repo) FindDrafts(ctx context.Context, limit int) ([]domain.DraftMenuItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, findDraftsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("find draft menu_items: %w", err)
	}
	defer rows.Close()

	var drafts []domain.DraftMenuItem
	for rows.Next() {
		d, scanErr := scanDraftFromRows(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("find draft menu_items: %w", scanErr)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find draft menu_items: %w", err)
	}

	if drafts == nil {
		drafts = []domain.DraftMenuItem{}
	}

	return drafts, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new menu item. New items start in draft state regardless
// of the PublishedAt value on the input.
func (r *Repo) Create(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	id := item.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC().Truncate(time.Microsecond)

	query, args, err := builder.
		Insert("menu_items").
		Columns("id", "category_id", "name", "description", "price", "available",
			"tags", "calories", "published_at", "created_at", "updated_at").
		Values(id, item.CategoryID, item.Name, item.Description, item.Price,
			item.Available, item.Tags, item.Calories, nil, now, now).
		Suffix(`RETURNING id, category_id, name, description, price, available,
			tags, calories, published_at, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build create menu_item: %w", err)
	}

	row := querier.QueryRow(ctx, query, args...)
	created, err := scanItemRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "menu_item", id)
	}

	return &created, nil
}

// Update overwrites the item's editable fields and clears published_at,
// flipping the item back into draft state. The stored snapshot is untouched.
func (r *Repo) Update(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := builder.
		Update("menu_items").
		Set("category_id", item.CategoryID).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price", item.Price).
		Set("available", item.Available).
		Set("tags", item.Tags).
		Set("calories", item.Calories).
		Set("published_at", nil).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": item.ID}).
		Suffix(`RETURNING id, category_id, name, description, price, available,
			tags, calories, published_at, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update menu_item: %w", err)
	}

	row := querier.QueryRow(ctx, query, args...)
	updated, err := scanItemRow(row)
	if err != nil {
		return nil, postgres.MapError(err, "menu_item", item.ID)
	}

	return &updated, nil
}

// MarkPublished sets the item's publish timestamp. Returns domain.ErrNotFound
// if no row was updated.
func (r *Repo) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := querier.Exec(ctx, markPublishedSQL, id, at)
	if err != nil {
		return postgres.MapError(err, "menu_item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu_item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// RestoreFromSnapshot overwrites every comparable live field, plus
// published_at, from the given snapshot. Variants are restored separately
// by the variant repository.
func (r *Repo) RestoreFromSnapshot(ctx context.Context, snap domain.MenuItemSnapshot) error {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := builder.
		Update("menu_items").
		Set("name", snap.Name).
		Set("description", snap.Description).
		Set("price", snap.Price).
		Set("available", snap.Available).
		Set("tags", snap.Tags).
		Set("calories", snap.Calories).
		Set("published_at", snap.PublishedAt).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond)).
		Where(sq.Eq{"id": snap.MenuItemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build restore menu_item: %w", err)
	}

	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "menu_item", snap.MenuItemID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu_item %s: %w", snap.MenuItemID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

type itemColumns struct {
	id          uuid.UUID
	categoryID  uuid.UUID
	name        string
	description pgtype.Text
	price       float64
	available   bool
	tags        []string
	calories    pgtype.Int4
	publishedAt pgtype.Timestamptz
	createdAt   time.Time
	updatedAt   time.Time
}

func (c *itemColumns) fields() []any {
	return []any{
		&c.id, &c.categoryID, &c.name, &c.description, &c.price, &c.available,
		&c.tags, &c.calories, &c.publishedAt, &c.createdAt, &c.updatedAt,
	}
}

func (c *itemColumns) toDomain() domain.MenuItem {
	item := domain.MenuItem{
		ID:         c.id,
		CategoryID: c.categoryID,
		Name:       c.name,
		Price:      c.price,
		Available:  c.available,
		Tags:       c.tags,
		CreatedAt:  c.createdAt,
		UpdatedAt:  c.updatedAt,
	}
	if c.description.Valid {
		item.Description = &c.description.String
	}
	if c.calories.Valid {
		cal := int(c.calories.Int32)
		item.Calories = &cal
	}
	if c.publishedAt.Valid {
		item.PublishedAt = &c.publishedAt.Time
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return item
}

func scanItemRow(row pgx.Row) (domain.MenuItem, error) {
	var c itemColumns
	if err := row.Scan(c.fields()...); err != nil {
		return domain.MenuItem{}, err
	}
	return c.toDomain(), nil
}

func scanDraftFromRows(rows pgx.Rows) (domain.DraftMenuItem, error) {
	var (
		c            itemColumns
		categoryName string
	)
	dest := append(c.fields(), &categoryName)
	if err := rows.Scan(dest...); err != nil {
		return domain.DraftMenuItem{}, err
	}
	return domain.DraftMenuItem{MenuItem: c.toDomain(), CategoryName: categoryName}, nil
}
