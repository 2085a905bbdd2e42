package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/pkg/ctxutil"
)

func TestActor_ValidHeader(t *testing.T) {
	staffID := uuid.New()

	var gotID uuid.UUID
	var gotOK bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = ctxutil.ActorIDFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Staff-Id", staffID.String())
	rec := httptest.NewRecorder()

	Actor(handler).ServeHTTP(rec, req)

	if !gotOK {
		t.Fatal("expected actor ID in context")
	}
	if gotID != staffID {
		t.Fatalf("expected %s, got %s", staffID, gotID)
	}
}

func TestActor_MissingHeader(t *testing.T) {
	var gotOK bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = ctxutil.ActorIDFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	Actor(handler).ServeHTTP(rec, req)

	if gotOK {
		t.Fatal("expected no actor ID for missing header")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("request should pass through, got status %d", rec.Code)
	}
}

func TestActor_MalformedHeader(t *testing.T) {
	var gotOK bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = ctxutil.ActorIDFromCtx(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Staff-Id", "not-a-uuid")
	rec := httptest.NewRecorder()

	Actor(handler).ServeHTTP(rec, req)

	if gotOK {
		t.Fatal("expected no actor ID for malformed header")
	}
}
