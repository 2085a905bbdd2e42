package rest

import (
	"log/slog"
	"net/http"

	"github.com/tablecraft/menuhub-backend/internal/config"
	"github.com/tablecraft/menuhub-backend/internal/transport/middleware"
)

// NewRouter assembles the HTTP routing table and wraps it in the standard
// middleware chain: recovery outermost, then request ID, actor extraction,
// CORS, and request logging. writeLimit guards the mutating routes only;
// reads stay unthrottled.
func NewRouter(
	logger *slog.Logger,
	corsCfg config.CORSConfig,
	writeLimit middleware.Middleware,
	menu *MenuHandler,
	health *HealthHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)

	mux.HandleFunc("GET /api/drafts", menu.Drafts)
	mux.Handle("POST /api/publish", writeLimit(http.HandlerFunc(menu.Publish)))
	mux.Handle("POST /api/menu-items/{id}/revert", writeLimit(http.HandlerFunc(menu.Revert)))
	mux.HandleFunc("GET /api/menu-items/{id}/history", menu.History)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Actor,
		middleware.CORS(corsCfg),
		middleware.Logger(logger),
	)

	return chain(mux)
}
