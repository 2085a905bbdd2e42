package menuitem_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/menuitem"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/testhelper"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*menuitem.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return menuitem.New(pool), pool
}

// ---------------------------------------------------------------------------
// GetByID tests
// ---------------------------------------------------------------------------

func TestRepo_GetByID_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cat := testhelper.SeedCategory(t, pool)
	seeded := testhelper.SeedMenuItem(t, pool, cat.ID)

	got, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}

	if got.Name != seeded.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, seeded.Name)
	}
	if got.Price != seeded.Price {
		t.Errorf("Price mismatch: got %v, want %v", got.Price, seeded.Price)
	}
	if got.PublishedAt != nil {
		t.Errorf("expected draft (nil PublishedAt), got %v", got.PublishedAt)
	}
	if got.Description == nil || *got.Description != *seeded.Description {
		t.Errorf("Description mismatch: got %v", got.Description)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// FindDrafts tests
// ---------------------------------------------------------------------------

func TestRepo_FindDrafts_OnlyUnpublished(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cat := testhelper.SeedCategory(t, pool)
	draft := testhelper.SeedMenuItem(t, pool, cat.ID)
	published := testhelper.SeedMenuItem(t, pool, cat.ID, func(m *domain.MenuItem) {
		at := time.Now().UTC()
		m.PublishedAt = &at
	})

	drafts, err := repo.FindDrafts(ctx, 1000)
	if err != nil {
		t.Fatalf("FindDrafts: unexpected error: %v", err)
	}

	var foundDraft, foundPublished bool
	for _, d := range drafts {
		if d.ID == draft.ID {
			foundDraft = true
			if d.CategoryName != cat.Name {
				t.Errorf("CategoryName mismatch: got %q, want %q", d.CategoryName, cat.Name)
			}
		}
		if d.ID == published.ID {
			foundPublished = true
		}
	}
	if !foundDraft {
		t.Error("expected draft item in results")
	}
	if foundPublished {
		t.Error("published item must not appear in draft results")
	}
}

func TestRepo_FindDrafts_MostRecentFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cat := testhelper.SeedCategory(t, pool)
	older := testhelper.SeedMenuItem(t, pool, cat.ID, func(m *domain.MenuItem) {
		m.UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)
	})
	newer := testhelper.SeedMenuItem(t, pool, cat.ID, func(m *domain.MenuItem) {
		m.UpdatedAt = time.Now().UTC().Add(-1 * time.Hour)
	})

	drafts, err := repo.FindDrafts(ctx, 1000)
	if err != nil {
		t.Fatalf("FindDrafts: unexpected error: %v", err)
	}

	posOlder, posNewer := -1, -1
	for i, d := range drafts {
		if d.ID == older.ID {
			posOlder = i
		}
		if d.ID == newer.ID {
			posNewer = i
		}
	}
	if posOlder == -1 || posNewer == -1 {
		t.Fatal("expected both seeded drafts in results")
	}
	if posNewer > posOlder {
		t.Errorf("expected newer draft before older: newer at %d, older at %d", posNewer, posOlder)
	}
}

// ---------------------------------------------------------------------------
// Create / Update tests
// ---------------------------------------------------------------------------

func TestRepo_Create_StartsAsDraft(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cat := testhelper.SeedCategory(t, pool)
	at := time.Now().UTC()

	created, err := repo.Create(ctx, &domain.MenuItem{
		CategoryID:  cat.ID,
		Name:        "Fresh Dish " + uuid.New().String()[:8],
		Price:       7.50,
		Available:   true,
		Tags:        []string{"new"},
		PublishedAt: &at, // must be ignored
	})
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if created.PublishedAt != nil {
		t.Errorf("new items must start as drafts, got PublishedAt %v", created.PublishedAt)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated ID")
	}
}

func TestRepo_Update_ClearsPublishedAt(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cat := testhelper.SeedCategory(t, pool)
	item := testhelper.SeedMenuItem(t, pool, cat.ID, func(m *domain.MenuItem) {
		at := time.Now().UTC()
		m.PublishedAt = &at
	})

	item.Price = 11.25
	updated, err := repo.Update(ctx, &item)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}

	if updated.PublishedAt != nil {
		t.Errorf("editing must flip the item back to draft, got PublishedAt %v", updated.PublishedAt)
	}
	if updated.Price != 11.25 {
		t.Errorf("Price mismatch: got %v, want 11.25", updated.Price)
	}
}

// ---------------------------------------------------------------------------
// MarkPublished tests
// ---------------------------------------------------------------------------

func TestRepo_MarkPublished_HappyPath(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cat := testhelper.SeedCategory(t, pool)
	item := testhelper.SeedMenuItem(t, pool, cat.ID)

	at := time.Now().UTC().Truncate(time.Microsecond)
	if err := repo.MarkPublished(ctx, item.ID, at); err != nil {
		t.Fatalf("MarkPublished: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID after publish: %v", err)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(at) {
		t.Errorf("PublishedAt mismatch: got %v, want %v", got.PublishedAt, at)
	}
}

func TestRepo_MarkPublished_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.MarkPublished(context.Background(), uuid.New(), time.Now())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// RestoreFromSnapshot tests
// ---------------------------------------------------------------------------

func TestRepo_RestoreFromSnapshot_OverwritesFields(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	cat := testhelper.SeedCategory(t, pool)
	item := testhelper.SeedMenuItem(t, pool, cat.ID, func(m *domain.MenuItem) {
		m.Name = "Edited Name"
		m.Price = 99.99
	})

	publishedAt := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Microsecond)
	desc := "The published description"
	snap := domain.MenuItemSnapshot{
		MenuItemID:   item.ID,
		SnapshotType: domain.SnapshotTypePublished,
		Name:         "Published Name",
		Description:  &desc,
		Price:        10.00,
		Available:    true,
		Tags:         []string{"classic"},
		PublishedAt:  &publishedAt,
	}

	if err := repo.RestoreFromSnapshot(ctx, snap); err != nil {
		t.Fatalf("RestoreFromSnapshot: unexpected error: %v", err)
	}

	got, err := repo.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID after restore: %v", err)
	}
	if got.Name != "Published Name" {
		t.Errorf("Name mismatch: got %q", got.Name)
	}
	if got.Price != 10.00 {
		t.Errorf("Price mismatch: got %v", got.Price)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(publishedAt) {
		t.Errorf("PublishedAt mismatch: got %v, want %v", got.PublishedAt, publishedAt)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "classic" {
		t.Errorf("Tags mismatch: got %v", got.Tags)
	}
}

func TestRepo_RestoreFromSnapshot_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.RestoreFromSnapshot(context.Background(), domain.MenuItemSnapshot{
		MenuItemID:   uuid.New(),
		SnapshotType: domain.SnapshotTypePublished,
		Name:         "Ghost",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
