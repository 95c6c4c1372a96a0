package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// CanUseFeature decides whether the user may use feature right now. A denial
// is a normal result. Storage failures deny with ReasonNotAvailable.
func (s *Service) CanUseFeature(ctx context.Context, userID uuid.UUID, feature domain.Feature) domain.FeatureDecision {
	plan, _, err := s.ResolvePlan(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "can use feature: resolve plan failed",
			slog.String("user_id", userID.String()),
			slog.String("feature", feature.String()),
			slog.String("error", err.Error()),
		)
		return deny(plan, domain.ReasonNotAvailable)
	}

	limits := s.GetLimits(plan)

	switch feature {
	case domain.FeatureChat:
		if limits.AIChatEnabled {
			return allow(plan)
		}
		if plan == domain.PlanFree {
			return deny(plan, domain.ReasonFreePlan)
		}
		return deny(plan, domain.ReasonNotAvailable)

	case domain.FeatureVoice:
		if limits.VoiceMinutesPerMonth == nil {
			return allow(plan)
		}
		if *limits.VoiceMinutesPerMonth <= 0 {
			return deny(plan, domain.ReasonFreePlan)
		}
		return s.checkQuota(ctx, userID, plan, domain.UsageVoiceSeconds, *limits.VoiceMinutesPerMonth*60)

	case domain.FeatureSummary:
		if limits.SummariesPerMonth == nil {
			return allow(plan)
		}
		if *limits.SummariesPerMonth <= 0 {
			return deny(plan, domain.ReasonLimitReached)
		}
		return s.checkQuota(ctx, userID, plan, domain.UsageSummaries, *limits.SummariesPerMonth)
	}

	return deny(plan, domain.ReasonNotAvailable)
}

func (s *Service) checkQuota(ctx context.Context, userID uuid.UUID, plan domain.Plan, t domain.UsageType, quota int) domain.FeatureDecision {
	usage, err := s.GetUsage(ctx, userID, s.now())
	if err != nil {
		s.log.ErrorContext(ctx, "can use feature: usage read failed",
			slog.String("user_id", userID.String()),
			slog.String("usage_type", t.String()),
			slog.String("error", err.Error()),
		)
		return deny(plan, domain.ReasonNotAvailable)
	}

	if usage.Get(t) >= quota {
		return deny(plan, domain.ReasonLimitReached)
	}
	return allow(plan)
}

func allow(plan domain.Plan) domain.FeatureDecision {
	return domain.FeatureDecision{Allowed: true, Plan: plan, Reason: domain.ReasonNone}
}

func deny(plan domain.Plan, reason domain.DenyReason) domain.FeatureDecision {
	return domain.FeatureDecision{Allowed: false, Plan: plan, Reason: reason}
}
