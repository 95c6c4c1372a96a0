// Command grant-plan activates a paid plan for a user without a payment.
// It is used for support cases and for testing the paid features.
//
// Usage:
//
//	grant-plan --telegram-id=123456 --plan=pro --period=monthly
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
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

func main() {
	telegramID := flag.Int64("telegram-id", 0, "telegram id of the user")
	plan := flag.String("plan", "", "plan to grant: pro or ultra")
	period := flag.String("period", string(domain.BillingMonthly), "billing period: monthly or yearly")
	flag.Parse()

	if *telegramID == 0 || *plan == "" {
		fmt.Fprintln(os.Stderr, "Usage: grant-plan --telegram-id=123456 --plan=pro [--period=monthly]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	users := user.New(pool)
	u, err := users.GetByTelegramID(ctx, *telegramID)
	if err != nil {
		log.Fatalf("find user %d: %v", *telegramID, err)
	}

	svc := ledger.NewService(logger, users, usage.New(pool), payment.New(pool),
		postgres.NewTxManager(pool), domain.DefaultPlanLimits(), cfg.Subscription.TrialDuration())

	if !svc.ActivateSubscription(ctx, u.ID, domain.Plan(*plan), domain.BillingPeriod(*period)) {
		fmt.Printf("Could not grant %s (%s) to user %d.\n", *plan, *period, *telegramID)
		os.Exit(1)
	}

	fmt.Printf("User %d is now on %s (%s).\n", *telegramID, *plan, *period)
}
