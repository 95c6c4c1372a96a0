// Command purge-usage deletes monthly usage counters older than the given
// number of months. Only the current month is ever read for quotas, so old
// rows are kept for reporting alone. It is intended to be invoked by an
// external cron job.
//
// Usage:
//
//	purge-usage [--keep-months=12]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/usage"
	"github.com/heartmarshall/fixnote-backend/internal/app"
	"github.com/heartmarshall/fixnote-backend/internal/config"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

func main() {
	keep := flag.Int("keep-months", 12, "number of past months to keep besides the current one")
	flag.Parse()

	if *keep < 0 {
		fmt.Fprintln(os.Stderr, "--keep-months must not be negative")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	cutoff := domain.MonthStart(time.Now()).AddDate(0, -*keep, 0)

	deleted, err := usage.New(pool).DeleteBefore(ctx, cutoff)
	if err != nil {
		logger.Error("purge usage failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	logger.Info("purge usage completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)
}
