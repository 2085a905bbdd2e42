package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/internal/domain"
	"github.com/tablecraft/menuhub-backend/internal/service/publish"
)

// publishService defines the minimal interface for the publish workflow.
type publishService interface {
	ScanDrafts(ctx context.Context) publish.ScanResult
	PublishBatch(ctx context.Context, input publish.PublishBatchInput) publish.PublishResult
	RevertItem(ctx context.Context, input publish.RevertInput) publish.RevertResult
	ItemHistory(ctx context.Context, itemID uuid.UUID) ([]domain.AuditRecord, error)
}

// MenuHandler serves the draft review and publish endpoints.
type MenuHandler struct {
	svc      publishService
	currency string
}

// NewMenuHandler creates a MenuHandler.
func NewMenuHandler(svc publishService, currency string) *MenuHandler {
	return &MenuHandler{svc: svc, currency: currency}
}

// fieldChangeView is a FieldChange enriched with rendered display strings.
type fieldChangeView struct {
	Field      string `json:"field"`
	Label      string `json:"label"`
	Old        any    `json:"old_value"`
	New        any    `json:"new_value"`
	OldDisplay string `json:"old_display"`
	NewDisplay string `json:"new_display"`
}

type draftItemView struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	CategoryName string            `json:"category_name"`
	IsNew        bool              `json:"is_new"`
	Changes      []fieldChangeView `json:"changes"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type scanResponse struct {
	Success bool            `json:"success"`
	Items   []draftItemView `json:"items"`
	Count   int             `json:"count"`
	Error   string          `json:"error,omitempty"`
}

// Drafts handles GET /api/drafts: every unpublished item with its pending
// field changes rendered for review.
func (h *MenuHandler) Drafts(w http.ResponseWriter, r *http.Request) {
	result := h.svc.ScanDrafts(r.Context())

	resp := scanResponse{
		Success: result.Success,
		Items:   make([]draftItemView, 0, len(result.Items)),
		Count:   result.Count,
		Error:   result.Error,
	}
	for _, item := range result.Items {
		view := draftItemView{
			ID:           item.ID,
			Name:         item.Name,
			CategoryName: item.CategoryName,
			IsNew:        item.IsNew,
			Changes:      make([]fieldChangeView, 0, len(item.Changes)),
			UpdatedAt:    item.UpdatedAt,
		}
		for _, c := range item.Changes {
			view.Changes = append(view.Changes, fieldChangeView{
				Field:      c.Field,
				Label:      c.Label,
				Old:        c.Old,
				New:        c.New,
				OldDisplay: domain.FormatValue(h.currency, c.Type, c.Old),
				NewDisplay: domain.FormatValue(h.currency, c.Type, c.New),
			})
		}
		resp.Items = append(resp.Items, view)
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

type publishRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids"`
}

// Publish handles POST /api/publish: snapshots and publishes the given
// items one by one, reporting per-item failures.
func (h *MenuHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := h.svc.PublishBatch(r.Context(), publish.PublishBatchInput{ItemIDs: req.ItemIDs})

	status := http.StatusOK
	if result.Error != "" {
		// A top-level error means the whole request was rejected.
		status = http.StatusBadRequest
	}
	writeJSON(w, status, result)
}

// Revert handles POST /api/menu-items/{id}/revert: restores the item to
// its last published state.
func (h *MenuHandler) Revert(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu item ID")
		return
	}

	result := h.svc.RevertItem(r.Context(), publish.RevertInput{ItemID: itemID})

	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	writeJSON(w, status, result)
}

type historyResponse struct {
	Records []historyRecord `json:"records"`
	Count   int             `json:"count"`
}

type historyRecord struct {
	ID        uuid.UUID      `json:"id"`
	ActorID   *uuid.UUID     `json:"actor_id,omitempty"`
	Action    string         `json:"action"`
	Changes   map[string]any `json:"changes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// History handles GET /api/menu-items/{id}/history: recent publish and
// revert audit records, newest first.
func (h *MenuHandler) History(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu item ID")
		return
	}

	records, err := h.svc.ItemHistory(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	resp := historyResponse{Records: make([]historyRecord, 0, len(records)), Count: len(records)}
	for _, rec := range records {
		resp.Records = append(resp.Records, historyRecord{
			ID:        rec.ID,
			ActorID:   rec.ActorID,
			Action:    string(rec.Action),
			Changes:   rec.Changes,
			CreatedAt: rec.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
