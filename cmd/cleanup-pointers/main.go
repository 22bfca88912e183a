// Command cleanup-pointers deletes expired menu session pointers. It is
// intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/huddle-backend/internal/adapter/postgres"
	"github.com/heartmarshall/huddle-backend/internal/adapter/postgres/pointer"
	"github.com/heartmarshall/huddle-backend/internal/app"
	"github.com/heartmarshall/huddle-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	now := time.Now().UTC()
	deleted, err := pointer.New(pool).DeleteExpired(ctx, now)
	if err != nil {
		logger.Error("delete expired pointers", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("expired pointers deleted",
		slog.Int64("deleted", deleted),
		slog.Time("now", now),
	)
}
