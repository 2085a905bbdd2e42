package publish

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/internal/config"
	"github.com/tablecraft/menuhub-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MenuItem, error)
	FindDrafts(ctx context.Context, limit int) ([]domain.DraftMenuItem, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	RestoreFromSnapshot(ctx context.Context, snap domain.MenuItemSnapshot) error
}

type variantRepo interface {
	GetByItemID(ctx context.Context, itemID uuid.UUID) ([]domain.Variant, error)
	ReplaceForItem(ctx context.Context, itemID uuid.UUID, variants []domain.Variant) ([]domain.Variant, error)
}

type snapshotRepo interface {
	GetByItemID(ctx context.Context, itemID uuid.UUID, snapType domain.SnapshotType) (*domain.MenuItemSnapshot, error)
	GetForDraftItems(ctx context.Context, snapType domain.SnapshotType) ([]domain.MenuItemSnapshot, error)
	Upsert(ctx context.Context, snap domain.MenuItemSnapshot) (*domain.MenuItemSnapshot, error)
}

type auditRepo interface {
	Create(ctx context.Context, record domain.AuditRecord) (domain.AuditRecord, error)
	GetByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the draft review and publish workflow.
type Service struct {
	log       *slog.Logger
	items     itemRepo
	variants  variantRepo
	snapshots snapshotRepo
	audit     auditRepo
	tx        txManager
	cfg       config.PublishConfig
}

// NewService creates a new Publish service.
func NewService(
	logger *slog.Logger,
	items itemRepo,
	variants variantRepo,
	snapshots snapshotRepo,
	audit auditRepo,
	tx txManager,
	cfg config.PublishConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "publish"),
		items:     items,
		variants:  variants,
		snapshots: snapshots,
		audit:     audit,
		tx:        tx,
		cfg:       cfg,
	}
}
