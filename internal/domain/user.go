package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLanguage is assigned to users whose client sends no language code.
const DefaultLanguage = "ru"

// User is a chat-platform user of the bot and the mini app.
type User struct {
	ID           uuid.UUID
	TelegramID   int64
	Username     *string
	FirstName    *string
	LanguageCode string
	Plan         Plan

	TrialStartedAt        *time.Time
	TrialEndsAt           *time.Time
	SubscriptionStartedAt *time.Time
	SubscriptionExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpiredAt reports whether the user's stored plan has lapsed at now.
// A plan without an expiry timestamp never lapses.
func (u User) ExpiredAt(now time.Time) bool {
	switch u.Plan {
	case PlanTrial:
		return u.TrialEndsAt != nil && now.After(*u.TrialEndsAt)
	case PlanPro, PlanUltra:
		return u.SubscriptionExpiresAt != nil && now.After(*u.SubscriptionExpiresAt)
	}
	return false
}

// DisplayName returns the first name, falling back to the username.
func (u User) DisplayName() string {
	if u.FirstName != nil && *u.FirstName != "" {
		return *u.FirstName
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return ""
}

// TelegramProfile is the identity a chat-platform update carries.
type TelegramProfile struct {
	TelegramID   int64
	Username     *string
	FirstName    *string
	LanguageCode string
}
