// Package ledger decides what a user's plan entitles them to and meters
// monthly usage.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	DowngradePlan(ctx context.Context, id uuid.UUID, from domain.Plan) (bool, error)
	ActivateSubscription(ctx context.Context, id uuid.UUID, plan domain.Plan, startedAt, expiresAt time.Time) (*domain.User, error)
}

type usageRepo interface {
	Increment(ctx context.Context, userID uuid.UUID, monthStart time.Time, usageType domain.UsageType, amount int) error
	Get(ctx context.Context, userID uuid.UUID, monthStart time.Time) (*domain.UsageRecord, error)
}

type paymentRepo interface {
	Create(ctx context.Context, p domain.Payment) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements plan resolution, entitlement checks and usage metering.
type Service struct {
	log      *slog.Logger
	users    userRepo
	usage    usageRepo
	payments paymentRepo
	tx       txManager
	limits   domain.PlanLimits
	trial    time.Duration
	now      func() time.Time
}

// NewService creates a new ledger service. trial is the length of the trial
// granted to new users.
func NewService(
	logger *slog.Logger,
	users userRepo,
	usage usageRepo,
	payments paymentRepo,
	tx txManager,
	limits domain.PlanLimits,
	trial time.Duration,
) *Service {
	if limits == nil {
		limits = domain.DefaultPlanLimits()
	}
	return &Service{
		log:      logger.With("service", "ledger"),
		users:    users,
		usage:    usage,
		payments: payments,
		tx:       tx,
		limits:   limits,
		trial:    trial,
		now:      time.Now,
	}
}

// GetLimits returns the limits of plan. Unknown plans get the most
// restrictive limits.
func (s *Service) GetLimits(plan domain.Plan) domain.SubscriptionLimits {
	return s.limits.Lookup(plan)
}

// StartTrial puts a new user on the trial plan. A zero trial length starts
// the user on the free plan instead.
func (s *Service) StartTrial(u *domain.User) {
	now := s.now().UTC()
	if s.trial <= 0 {
		u.Plan = domain.PlanFree
		return
	}
	ends := now.Add(s.trial)
	u.Plan = domain.PlanTrial
	u.TrialStartedAt = &now
	u.TrialEndsAt = &ends
}
