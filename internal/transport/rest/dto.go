package rest

import (
	"time"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

type noteResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Content         string    `json:"content"`
	Summary         *string   `json:"summary"`
	Source          string    `json:"source"`
	DurationSeconds *int      `json:"duration_seconds"`
	ShareToken      *string   `json:"share_token"`
	IsPublic        bool      `json:"is_public"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toNoteResponse(n domain.Note) noteResponse {
	return noteResponse{
		ID:              n.ID.String(),
		UserID:          n.UserID.String(),
		Content:         n.Content,
		Summary:         n.Summary,
		Source:          n.Source.String(),
		DurationSeconds: n.DurationSeconds,
		ShareToken:      n.ShareToken,
		IsPublic:        n.IsPublic,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

// publicNoteResponse is what a share link reveals: no owner, no token.
type publicNoteResponse struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	Summary         *string   `json:"summary"`
	Source          string    `json:"source"`
	DurationSeconds *int      `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

type notesListResponse struct {
	Notes []noteResponse `json:"notes"`
	Total int            `json:"total"`
}

type searchResultResponse struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Summary    *string   `json:"summary"`
	Similarity float64   `json:"similarity"`
	CreatedAt  time.Time `json:"created_at"`
}

type searchResponse struct {
	Results []searchResultResponse `json:"results"`
	Query   string                 `json:"query"`
}

type ftsResultResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Summary   *string   `json:"summary"`
	Rank      float64   `json:"rank"`
	CreatedAt time.Time `json:"created_at"`
}

type ftsResponse struct {
	Results []ftsResultResponse `json:"results"`
	Query   string              `json:"query"`
}

type shareResponse struct {
	ShareURL   string `json:"share_url"`
	ShareToken string `json:"share_token"`
	IsPublic   bool   `json:"is_public"`
}

type sharedNoteResponse struct {
	Note    publicNoteResponse `json:"note"`
	IsOwner bool               `json:"is_owner"`
	CanEdit bool               `json:"can_edit"`
}

type statsResponse struct {
	TotalNotes     int `json:"total_notes"`
	VoiceNotes     int `json:"voice_notes"`
	TextNotes      int `json:"text_notes"`
	NotesThisWeek  int `json:"notes_this_week"`
	NotesThisMonth int `json:"notes_this_month"`
}

type limitsResponse struct {
	SummariesPerMonth    *int `json:"summaries_per_month"`
	VoiceMinutesPerMonth *int `json:"voice_minutes_per_month"`
	AIChatEnabled        bool `json:"ai_chat_enabled"`
	AIChatFast           bool `json:"ai_chat_fast"`
	SyncEnabled          bool `json:"sync_enabled"`
	AutoSync             bool `json:"auto_sync"`
	PriceMonthlyStars    int  `json:"price_monthly_stars"`
	PriceYearlyStars     int  `json:"price_yearly_stars"`
}

type usageResponse struct {
	MonthStart       time.Time `json:"month_start"`
	SummariesUsed    int       `json:"summaries_used"`
	VoiceSecondsUsed int       `json:"voice_seconds_used"`
	ChatMessagesUsed int       `json:"chat_messages_used"`
}

type subscriptionResponse struct {
	Plan                  string         `json:"plan"`
	SubscriptionStartedAt *time.Time     `json:"subscription_started_at"`
	SubscriptionExpiresAt *time.Time     `json:"subscription_expires_at"`
	TrialStartedAt        *time.Time     `json:"trial_started_at"`
	TrialEndsAt           *time.Time     `json:"trial_ends_at"`
	Limits                limitsResponse `json:"limits"`
	Usage                 usageResponse  `json:"usage"`
}

func toSubscriptionResponse(info domain.SubscriptionInfo) subscriptionResponse {
	l := info.Limits
	return subscriptionResponse{
		Plan:                  info.Plan.String(),
		SubscriptionStartedAt: info.SubscriptionStartedAt,
		SubscriptionExpiresAt: info.SubscriptionExpiresAt,
		TrialStartedAt:        info.TrialStartedAt,
		TrialEndsAt:           info.TrialEndsAt,
		Limits: limitsResponse{
			SummariesPerMonth:    l.SummariesPerMonth,
			VoiceMinutesPerMonth: l.VoiceMinutesPerMonth,
			AIChatEnabled:        l.AIChatEnabled,
			AIChatFast:           l.AIChatFast,
			SyncEnabled:          l.SyncEnabled,
			AutoSync:             l.AutoSync,
			PriceMonthlyStars:    l.PriceMonthlyStars,
			PriceYearlyStars:     l.PriceYearlyStars,
		},
		Usage: usageResponse{
			MonthStart:       info.Usage.MonthStart,
			SummariesUsed:    info.Usage.SummariesUsed,
			VoiceSecondsUsed: info.Usage.VoiceSecondsUsed,
			ChatMessagesUsed: info.Usage.ChatMessagesUsed,
		},
	}
}

type userResponse struct {
	ID           string  `json:"id"`
	TelegramID   int64   `json:"telegram_id"`
	Username     *string `json:"username"`
	FirstName    *string `json:"first_name"`
	LanguageCode string  `json:"language_code"`
	Plan         string  `json:"plan"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:           u.ID.String(),
		TelegramID:   u.TelegramID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LanguageCode: u.LanguageCode,
		Plan:         u.Plan.String(),
	}
}
