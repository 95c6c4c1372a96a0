package telegram

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

const (
	recentNotesLimit = 10
	previewRunes     = 100
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *domain.User) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		name := user.DisplayName()
		if name == "" {
			name = "друг"
		}
		b.reply(ctx, chatID, fmt.Sprintf(msgWelcome, html.EscapeString(name)), b.notesKeyboard())
	case "help":
		b.reply(ctx, chatID, msgHelp, nil)
	case "ask":
		b.handleAsk(ctx, chatID, msg.CommandArguments())
	case "notes":
		b.handleNotes(ctx, chatID)
	case "stats":
		b.handleStats(ctx, chatID)
	case "status":
		b.handleStatus(ctx, chatID)
	case "subscription":
		b.handleSubscription(ctx, chatID, user)
	}
}

func (b *Bot) handleAsk(ctx context.Context, chatID int64, question string) {
	question = strings.TrimSpace(question)
	if question == "" {
		b.reply(ctx, chatID, msgAskUsage, nil)
		return
	}

	status := b.reply(ctx, chatID, msgAskSearching, nil)

	ans, err := b.asker.Ask(ctx, question)
	switch {
	case err != nil:
		b.log.ErrorContext(ctx, "ask", slog.String("error", err.Error()))
		b.edit(ctx, chatID, status, msgProcessingFailed, nil)
	case ans.Denied != nil:
		b.edit(ctx, chatID, status, chatDenial(*ans.Denied), b.notesKeyboard())
	case ans.NoRelevantNotes:
		b.edit(ctx, chatID, status, msgNoRelevant, nil)
	default:
		b.edit(ctx, chatID, status, fmt.Sprintf(msgAnswer, html.EscapeString(ans.Text)), nil)
	}
}

func chatDenial(d domain.FeatureDecision) string {
	if d.Reason == domain.ReasonFreePlan {
		return msgChatFreePlan
	}
	return fmt.Sprintf(msgChatNotAvailable, planTitle(d.Plan))
}

func (b *Bot) handleNotes(ctx context.Context, chatID int64) {
	if kb := b.notesKeyboard(); kb != nil {
		b.reply(ctx, chatID, msgOpenNotes, kb)
		return
	}

	list, _, err := b.notes.ListNotes(ctx, recentNotesLimit, 0)
	if err != nil {
		b.log.ErrorContext(ctx, "list notes", slog.String("error", err.Error()))
		b.reply(ctx, chatID, msgProcessingFailed, nil)
		return
	}
	if len(list) == 0 {
		b.reply(ctx, chatID, msgNoNotes, nil)
		return
	}

	var sb strings.Builder
	sb.WriteString(msgRecentNotes)
	for i, n := range list {
		text := n.Content
		if n.Summary != nil && *n.Summary != "" {
			text = *n.Summary
		}
		fmt.Fprintf(&sb, "\n%d. %s %s\n   <i>%s</i>\n",
			i+1, sourceIcon(n.Source), html.EscapeString(truncate(text, previewRunes)), n.CreatedAt.Format("02.01 15:04"))
	}
	b.reply(ctx, chatID, sb.String(), nil)
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) {
	st, err := b.notes.Stats(ctx)
	if err != nil {
		b.log.ErrorContext(ctx, "stats", slog.String("error", err.Error()))
		b.reply(ctx, chatID, msgProcessingFailed, nil)
		return
	}
	b.reply(ctx, chatID, fmt.Sprintf(msgStats, st.Total, st.Voice, st.Text, st.ThisWeek, st.ThisMonth), nil)
}

// handleStatus runs every status check concurrently.
func (b *Bot) handleStatus(ctx context.Context, chatID int64) {
	status := b.reply(ctx, chatID, msgStatusChecking, nil)

	results := make([]bool, len(b.opts.StatusChecks))
	var g errgroup.Group
	for i, c := range b.opts.StatusChecks {
		g.Go(func() error {
			results[i] = c.Check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	var sb strings.Builder
	sb.WriteString(msgStatusHeader)
	for i, c := range b.opts.StatusChecks {
		mark := "❌"
		if results[i] {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "\n%s: %s", c.Label, mark)
	}
	b.edit(ctx, chatID, status, sb.String(), nil)
}

func (b *Bot) handleSubscription(ctx context.Context, chatID int64, user *domain.User) {
	info, err := b.ledger.GetSubscriptionInfo(ctx, user.ID)
	if err != nil {
		b.log.ErrorContext(ctx, "subscription info", slog.String("error", err.Error()))
		b.reply(ctx, chatID, msgProcessingFailed, nil)
		return
	}
	b.reply(ctx, chatID, formatSubscription(info), b.notesKeyboard())
}

func formatSubscription(info domain.SubscriptionInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💳 <b>Подписка</b>\n\nПлан: <b>%s</b>\n", planTitle(info.Plan))

	switch {
	case info.Plan == domain.PlanTrial && info.TrialEndsAt != nil:
		fmt.Fprintf(&sb, "Пробный период до: %s\n", info.TrialEndsAt.Format("02.01.2006"))
	case info.Plan.IsPaid() && info.SubscriptionExpiresAt != nil:
		fmt.Fprintf(&sb, "Действует до: %s\n", info.SubscriptionExpiresAt.Format("02.01.2006"))
	}

	l, u := info.Limits, info.Usage
	sb.WriteString("\n<b>В этом месяце:</b>\n")
	fmt.Fprintf(&sb, "🎤 Голос: %d мин из %s\n", u.VoiceSecondsUsed/60, quotaText(l.VoiceMinutesPerMonth, " мин"))
	fmt.Fprintf(&sb, "💡 Саммари: %d из %s\n", u.SummariesUsed, quotaText(l.SummariesPerMonth, ""))
	if l.AIChatEnabled {
		fmt.Fprintf(&sb, "💬 AI-чат: %d сообщений\n", u.ChatMessagesUsed)
	} else {
		sb.WriteString("💬 AI-чат: недоступен\n")
	}
	return sb.String()
}

func quotaText(q *int, unit string) string {
	if q == nil {
		return "∞"
	}
	return fmt.Sprintf("%d%s", *q, unit)
}

func planTitle(p domain.Plan) string {
	switch p {
	case domain.PlanFree:
		return "Free"
	case domain.PlanTrial:
		return "Trial"
	case domain.PlanPro:
		return "Pro ⭐️"
	case domain.PlanUltra:
		return "Ultra 💎"
	}
	return p.String()
}

func sourceIcon(s domain.NoteSource) string {
	if s == domain.NoteSourceVoice {
		return "🎤"
	}
	return "📝"
}

// truncate cuts s to n runes and marks the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
