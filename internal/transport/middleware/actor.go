package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/tablecraft/menuhub-backend/pkg/ctxutil"
)

// Actor extracts the acting staff member's ID from the X-Staff-Id header
// and stores it in the request context. Identity is established upstream;
// a missing or malformed header leaves the context without an actor rather
// than rejecting the request.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Staff-Id")
		if raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				r = r.WithContext(ctxutil.WithActorID(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}
