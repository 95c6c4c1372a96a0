package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// GetUsage returns the counters of the calendar month containing month. A
// month without activity yields a zero record; nothing is written.
func (s *Service) GetUsage(ctx context.Context, userID uuid.UUID, month time.Time) (domain.UsageRecord, error) {
	start := domain.MonthStart(month)

	rec, err := s.usage.Get(ctx, userID, start)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UsageRecord{UserID: userID, MonthStart: start}, nil
	}
	if err != nil {
		return domain.UsageRecord{}, fmt.Errorf("get usage: %w", err)
	}
	return *rec, nil
}

// IncrementUsage adds amount to the current month's counter. Negative
// amounts are rejected and zero is a successful no-op.
func (s *Service) IncrementUsage(ctx context.Context, userID uuid.UUID, usageType domain.UsageType, amount int) bool {
	if amount < 0 || !usageType.IsValid() {
		s.log.WarnContext(ctx, "increment usage rejected",
			slog.String("user_id", userID.String()),
			slog.String("usage_type", usageType.String()),
			slog.Int("amount", amount),
		)
		return false
	}
	if amount == 0 {
		return true
	}

	if err := s.usage.Increment(ctx, userID, domain.MonthStart(s.now()), usageType, amount); err != nil {
		s.log.ErrorContext(ctx, "increment usage failed",
			slog.String("user_id", userID.String()),
			slog.String("usage_type", usageType.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}
