package domain

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a subscription tier.
type Plan string

const (
	PlanFree  Plan = "free"
	PlanTrial Plan = "trial"
	PlanPro   Plan = "pro"
	PlanUltra Plan = "ultra"
)

func (p Plan) String() string { return string(p) }

func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanTrial, PlanPro, PlanUltra:
		return true
	}
	return false
}

// IsPaid reports whether the plan can be bought.
func (p Plan) IsPaid() bool { return p == PlanPro || p == PlanUltra }

// BillingPeriod is the length of a paid subscription.
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
)

func (b BillingPeriod) String() string { return string(b) }

func (b BillingPeriod) IsValid() bool {
	return b == BillingMonthly || b == BillingYearly
}

// Duration returns how long one period of the subscription lasts.
func (b BillingPeriod) Duration() time.Duration {
	if b == BillingYearly {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// Feature is a gated capability.
type Feature string

const (
	FeatureVoice   Feature = "voice"
	FeatureSummary Feature = "summary"
	FeatureChat    Feature = "chat"
)

func (f Feature) String() string { return string(f) }

// DenyReason explains a negative entitlement decision.
type DenyReason string

const (
	ReasonNone         DenyReason = "none"
	ReasonFreePlan     DenyReason = "free_plan"
	ReasonNotAvailable DenyReason = "not_available"
	ReasonLimitReached DenyReason = "limit_reached"
)

func (r DenyReason) String() string { return string(r) }

// FeatureDecision is the outcome of an entitlement check. A denial is a
// normal outcome, not an error.
type FeatureDecision struct {
	Allowed bool
	Plan    Plan
	Reason  DenyReason
}

// UsageType names a metered counter.
type UsageType string

const (
	UsageVoiceSeconds UsageType = "voice_seconds"
	UsageSummaries    UsageType = "summaries"
	UsageChatMessages UsageType = "chat_messages"
)

func (u UsageType) String() string { return string(u) }

func (u UsageType) IsValid() bool {
	switch u {
	case UsageVoiceSeconds, UsageSummaries, UsageChatMessages:
		return true
	}
	return false
}

// SubscriptionLimits are the capabilities and quotas of a plan. A nil quota
// is unlimited.
type SubscriptionLimits struct {
	Plan                 Plan
	SummariesPerMonth    *int
	VoiceMinutesPerMonth *int
	AIChatEnabled        bool
	AIChatFast           bool
	SyncEnabled          bool
	AutoSync             bool
	PriceMonthlyStars    int
	PriceYearlyStars     int
}

// Price returns the price in Telegram Stars for one billing period.
func (l SubscriptionLimits) Price(period BillingPeriod) int {
	if period == BillingYearly {
		return l.PriceYearlyStars
	}
	return l.PriceMonthlyStars
}

// PlanLimits is the plan reference data.
type PlanLimits map[Plan]SubscriptionLimits

func quota(n int) *int { return &n }

// DefaultPlanLimits returns the built-in plan catalog.
func DefaultPlanLimits() PlanLimits {
	return PlanLimits{
		PlanFree: {
			Plan:                 PlanFree,
			SummariesPerMonth:    quota(0),
			VoiceMinutesPerMonth: quota(0),
		},
		PlanTrial: {
			Plan:          PlanTrial,
			AIChatEnabled: true,
			AIChatFast:    true,
			SyncEnabled:   true,
			AutoSync:      true,
		},
		PlanPro: {
			Plan:                 PlanPro,
			SummariesPerMonth:    quota(30),
			VoiceMinutesPerMonth: quota(120),
			AIChatEnabled:        true,
			SyncEnabled:          true,
			PriceMonthlyStars:    350,
			PriceYearlyStars:     3500,
		},
		PlanUltra: {
			Plan:              PlanUltra,
			AIChatEnabled:     true,
			AIChatFast:        true,
			SyncEnabled:       true,
			AutoSync:          true,
			PriceMonthlyStars: 800,
			PriceYearlyStars:  8000,
		},
	}
}

// Lookup returns the limits for plan. An unknown plan gets the most
// restrictive limits: every quota zero and every capability disabled.
func (pl PlanLimits) Lookup(plan Plan) SubscriptionLimits {
	if l, ok := pl[plan]; ok {
		return l
	}
	return SubscriptionLimits{
		Plan:                 plan,
		SummariesPerMonth:    quota(0),
		VoiceMinutesPerMonth: quota(0),
	}
}

// UsageRecord holds the metered counters of one user for one calendar month.
type UsageRecord struct {
	UserID           uuid.UUID
	MonthStart       time.Time
	SummariesUsed    int
	VoiceSecondsUsed int
	ChatMessagesUsed int
}

// Get returns the counter for t.
func (r UsageRecord) Get(t UsageType) int {
	switch t {
	case UsageVoiceSeconds:
		return r.VoiceSecondsUsed
	case UsageSummaries:
		return r.SummariesUsed
	case UsageChatMessages:
		return r.ChatMessagesUsed
	}
	return 0
}

// MonthStart returns the first instant of t's calendar month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// SubscriptionInfo is the subscription view shown to the user.
type SubscriptionInfo struct {
	Plan                  Plan
	SubscriptionStartedAt *time.Time
	SubscriptionExpiresAt *time.Time
	TrialStartedAt        *time.Time
	TrialEndsAt           *time.Time
	Limits                SubscriptionLimits
	Usage                 UsageRecord
}

// Payment is a confirmed payment. ChargeID is the payment provider's
// transaction id and is unique across all payments.
type Payment struct {
	ID        uuid.UUID
	ChargeID  string
	UserID    uuid.UUID
	Plan      Plan
	Period    BillingPeriod
	Amount    int
	Currency  string
	CreatedAt time.Time
}
