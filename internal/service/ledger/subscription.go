package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// ActivateSubscription starts a paid plan now for one billing period. It
// returns false for an unpaid plan, an unknown period or a storage failure.
func (s *Service) ActivateSubscription(ctx context.Context, userID uuid.UUID, plan domain.Plan, period domain.BillingPeriod) bool {
	if !plan.IsPaid() || !period.IsValid() {
		s.log.WarnContext(ctx, "activate subscription rejected",
			slog.String("user_id", userID.String()),
			slog.String("plan", plan.String()),
			slog.String("period", period.String()),
		)
		return false
	}

	if err := s.activate(ctx, userID, plan, period); err != nil {
		s.log.ErrorContext(ctx, "activate subscription failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// ConfirmPayment records a payment and activates the paid plan in one
// transaction. A charge id that was already confirmed returns false and
// leaves the subscription untouched.
func (s *Service) ConfirmPayment(ctx context.Context, p domain.Payment) (bool, error) {
	var errs []domain.FieldError
	if p.ChargeID == "" {
		errs = append(errs, domain.FieldError{Field: "charge_id", Message: "required"})
	}
	if !p.Plan.IsPaid() {
		errs = append(errs, domain.FieldError{Field: "plan", Message: "must be pro or ultra"})
	}
	if !p.Period.IsValid() {
		errs = append(errs, domain.FieldError{Field: "period", Message: "must be monthly or yearly"})
	}
	if len(errs) > 0 {
		return false, domain.NewValidationErrors(errs)
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.payments.Create(ctx, p); err != nil {
			return err
		}
		return s.activate(ctx, p.UserID, p.Plan, p.Period)
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		s.log.WarnContext(ctx, "payment replayed",
			slog.String("user_id", p.UserID.String()),
			slog.String("charge_id", p.ChargeID),
		)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm payment: %w", err)
	}

	s.log.InfoContext(ctx, "subscription activated",
		slog.String("user_id", p.UserID.String()),
		slog.String("plan", p.Plan.String()),
		slog.String("period", p.Period.String()),
		slog.Int("amount", p.Amount),
	)
	return true, nil
}

func (s *Service) activate(ctx context.Context, userID uuid.UUID, plan domain.Plan, period domain.BillingPeriod) error {
	start := s.now().UTC()
	if _, err := s.users.ActivateSubscription(ctx, userID, plan, start, start.Add(period.Duration())); err != nil {
		return fmt.Errorf("activate %s: %w", plan, err)
	}
	return nil
}
