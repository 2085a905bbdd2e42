package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tablecraft/menuhub-backend/pkg/ctxutil"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(10)(okHandler())

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/publish", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status %d, got %d", i, http.StatusOK, rec.Code)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(5)(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/publish", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status %d, got %d", i, http.StatusOK, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/publish", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header to be set")
	}
}

func TestRateLimiter_ActorsIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(2)(okHandler())

	send := func(staffID uuid.UUID) int {
		req := httptest.NewRequest(http.MethodPost, "/api/publish", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req = req.WithContext(ctxutil.WithActorID(req.Context(), staffID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	first := uuid.New()
	for i := 0; i < 2; i++ {
		if code := send(first); code != http.StatusOK {
			t.Fatalf("request %d: expected status %d, got %d", i, http.StatusOK, code)
		}
	}
	if code := send(first); code != http.StatusTooManyRequests {
		t.Fatalf("expected first actor exhausted, got %d", code)
	}

	// A different staff member shares the address but not the bucket.
	if code := send(uuid.New()); code != http.StatusOK {
		t.Fatalf("expected second actor allowed, got %d", code)
	}
}

func TestRateLimiter_AddressFallbackIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	defer rl.Stop()

	handler := rl.Limit(1)(okHandler())

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/publish", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send("10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("expected first caller allowed, got %d", code)
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("expected first caller exhausted, got %d", code)
	}
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("expected second caller allowed, got %d", code)
	}
}
