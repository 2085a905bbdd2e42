// Command publish-all snapshots and publishes every draft menu item in one
// pass. It is intended for end-of-day bulk publishing from a cron job or an
// operator shell, using the same workflow as the HTTP API.
//
// Usage:
//
//	publish-all [--dry-run] [--actor=<staff-uuid>]
//
// Exit codes: 0 = all drafts published, 1 = error or partial failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/audit"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/menuitem"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/snapshot"
	"github.com/tablecraft/menuhub-backend/internal/adapter/postgres/variant"
	"github.com/tablecraft/menuhub-backend/internal/app"
	"github.com/tablecraft/menuhub-backend/internal/config"
	"github.com/tablecraft/menuhub-backend/internal/service/publish"
	"github.com/tablecraft/menuhub-backend/pkg/ctxutil"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "list drafts without publishing")
	actor := flag.String("actor", "", "staff UUID recorded in the audit log")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *actor != "" {
		actorID, err := uuid.Parse(*actor)
		if err != nil {
			log.Fatalf("invalid --actor UUID: %v", err)
		}
		ctx = ctxutil.WithActorID(ctx, actorID)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := publish.NewService(
		logger,
		menuitem.New(pool),
		variant.New(pool),
		snapshot.New(pool),
		audit.New(pool),
		postgres.NewTxManager(pool),
		cfg.Publish,
	)

	scan := svc.ScanDrafts(ctx)
	if !scan.Success {
		logger.Error("scan drafts", slog.String("error", scan.Error))
		os.Exit(1)
	}

	if scan.Count == 0 {
		fmt.Println("No drafts to publish.")
		return
	}

	for _, item := range scan.Items {
		state := "changed"
		if item.IsNew {
			state = "new"
		}
		fmt.Printf("  %s  %-30s  %s (%d changes)\n", item.ID, item.Name, state, len(item.Changes))
	}

	if *dryRun {
		fmt.Printf("Dry run: %d draft(s) would be published.\n", scan.Count)
		return
	}

	ids := make([]uuid.UUID, 0, len(scan.Items))
	for _, item := range scan.Items {
		ids = append(ids, item.ID)
	}

	var published int
	var failed []publish.BatchError
	for start := 0; start < len(ids); start += cfg.Publish.MaxBatchSize {
		end := min(start+cfg.Publish.MaxBatchSize, len(ids))

		result := svc.PublishBatch(ctx, publish.PublishBatchInput{ItemIDs: ids[start:end]})
		if result.Error != "" {
			logger.Error("publish batch", slog.String("error", result.Error))
			os.Exit(1)
		}
		published += result.Count
		failed = append(failed, result.Failed...)
	}

	fmt.Printf("Published %d of %d draft(s).\n", published, len(ids))
	for _, f := range failed {
		fmt.Printf("  failed %s: %s\n", f.ID, f.Error)
	}
	if len(failed) > 0 {
		os.Exit(1)
	}
}
