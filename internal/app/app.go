package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/audit"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/menuitem"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/snapshot"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/variant"
	"github.com/tablecraft/menuhub-backend/internal/config"
	"github.com/tablecraft/menuhub-backend/internal/service/publish"
	"github.com/tablecraft/menuhub-backend/internal/transport/middleware"
	"github.com/tablecraft/menuhub-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger and database pool, wires repositories and services, and runs
// the HTTP server until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	itemRepo := menuitem.New(pool)
	variantRepo := variant.New(pool)
	snapshotRepo := snapshot.New(pool)
	auditRepo := audit.New(pool)
	txManager := postgres.NewTxManager(pool)

	publishSvc := publish.NewService(
		logger,
		itemRepo,
		variantRepo,
		snapshotRepo,
		auditRepo,
		txManager,
		cfg.Publish,
	)

	menuHandler := rest.NewMenuHandler(publishSvc, cfg.Publish.CurrencySymbol)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	router := rest.NewRouter(logger, cfg.CORS, limiter.Limit(cfg.Server.WriteRateLimit), menuHandler, healthHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
