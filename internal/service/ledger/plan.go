package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// ResolvePlan returns the user's effective plan. A lapsed trial or paid plan
// is downgraded to free in storage. The downgrade only applies while the
// stored plan is the one observed, so a concurrent activation wins.
func (s *Service) ResolvePlan(ctx context.Context, userID uuid.UUID) (domain.Plan, *domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("resolve plan: %w", err)
	}

	if !u.ExpiredAt(s.now()) {
		return u.Plan, u, nil
	}

	expired := u.Plan
	changed, err := s.users.DowngradePlan(ctx, userID, expired)
	if err != nil {
		return "", nil, fmt.Errorf("resolve plan: downgrade: %w", err)
	}

	if changed {
		s.log.InfoContext(ctx, "plan expired",
			slog.String("user_id", userID.String()),
			slog.String("from", expired.String()),
		)
		u.Plan = domain.PlanFree
		return u.Plan, u, nil
	}

	// Someone else changed the plan in between; trust the stored state.
	u, err = s.users.GetByID(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("resolve plan: reread: %w", err)
	}
	return u.Plan, u, nil
}

// GetSubscriptionInfo returns the effective plan, its limits and this
// month's usage.
func (s *Service) GetSubscriptionInfo(ctx context.Context, userID uuid.UUID) (domain.SubscriptionInfo, error) {
	plan, u, err := s.ResolvePlan(ctx, userID)
	if err != nil {
		return domain.SubscriptionInfo{}, err
	}

	usage, err := s.GetUsage(ctx, userID, s.now())
	if err != nil {
		return domain.SubscriptionInfo{}, err
	}

	return domain.SubscriptionInfo{
		Plan:                  plan,
		SubscriptionStartedAt: u.SubscriptionStartedAt,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		TrialStartedAt:        u.TrialStartedAt,
		TrialEndsAt:           u.TrialEndsAt,
		Limits:                s.GetLimits(plan),
		Usage:                 usage,
	}, nil
}
