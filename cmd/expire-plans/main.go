// Command expire-plans downgrades every user whose trial or paid plan has
// lapsed. Expiry is also applied lazily on each request; this sweep keeps the
// stored plans accurate for users who stopped coming back. It is intended to
// be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/payment"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/usage"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/fixnote-backend/internal/app"
	"github.com/heartmarshall/fixnote-backend/internal/config"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/service/ledger"
)

const batchSize = 200

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	users := user.New(pool)
	svc := ledger.NewService(logger, users, usage.New(pool), payment.New(pool),
		postgres.NewTxManager(pool), domain.DefaultPlanLimits(), cfg.Subscription.TrialDuration())

	var downgraded, failed int
	for {
		batch, err := users.ListExpired(ctx, time.Now(), batchSize)
		if err != nil {
			logger.Error("list expired users", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if len(batch) == 0 {
			break
		}

		progressed := false
		for _, u := range batch {
			plan, _, err := svc.ResolvePlan(ctx, u.ID)
			if err != nil {
				failed++
				logger.Warn("resolve plan",
					slog.String("user_id", u.ID.String()),
					slog.String("error", err.Error()),
				)
				continue
			}
			if plan != u.Plan {
				downgraded++
				progressed = true
			}
		}

		// The same rows keep coming back when every downgrade fails.
		if !progressed {
			break
		}
	}

	logger.Info("plan expiry completed",
		slog.Int("downgraded", downgraded),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		os.Exit(1)
	}
}
