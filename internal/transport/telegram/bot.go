// Package telegram is the chat front end of the notes service: it polls
// the Bot API, turns messages into notes and questions and settles Stars
// payments.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/service/assistant"
	"github.com/heartmarshall/fixnote-backend/internal/service/notes"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

// updateTimeout bounds the handling of one update, voice ingestion included.
const updateTimeout = 3 * time.Minute

type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

type noteService interface {
	GetOrCreateUser(ctx context.Context, p domain.TelegramProfile) (*domain.User, error)
	CreateNote(ctx context.Context, input notes.CreateNoteInput) (*domain.Note, error)
	ListNotes(ctx context.Context, limit, offset int) ([]domain.Note, int, error)
	Stats(ctx context.Context) (domain.NoteStats, error)
	IngestVoice(ctx context.Context, input notes.VoiceInput) (notes.VoiceResult, error)
	GetShared(ctx context.Context, token string, viewerTelegramID *int64) (notes.SharedView, error)
}

type asker interface {
	Ask(ctx context.Context, question string) (assistant.Answer, error)
}

type ledger interface {
	CanUseFeature(ctx context.Context, userID uuid.UUID, feature domain.Feature) domain.FeatureDecision
	GetSubscriptionInfo(ctx context.Context, userID uuid.UUID) (domain.SubscriptionInfo, error)
	ConfirmPayment(ctx context.Context, p domain.Payment) (bool, error)
}

// StatusCheck is one line of the /status report.
type StatusCheck struct {
	Label string
	Check func(ctx context.Context) bool
}

// Options tune the bot.
type Options struct {
	// AllowUser decides who may talk to the bot. Nil allows everyone.
	AllowUser func(telegramID int64) bool
	// WebAppURL is opened by the notes buttons. Empty falls back to a
	// plain list of recent notes.
	WebAppURL string
	// BotUsername builds t.me deep links for shared notes.
	BotUsername     string
	PollTimeout     int
	ForwardDebounce time.Duration
	MaxVoiceBytes   int64
	Currency        string
	StatusChecks    []StatusCheck
}

// Bot handles Bot API updates.
type Bot struct {
	api      botAPI
	notes    noteService
	asker    asker
	ledger   ledger
	opts     Options
	log      *slog.Logger
	http     *http.Client
	now      func() time.Time
	forwards *Debouncer[forwardedText]
}

// forwardedText is one buffered forwarded message.
type forwardedText struct {
	ChatID     int64
	UserID     uuid.UUID
	TelegramID int64
	Text       string
}

// New creates a Bot on top of a connected Bot API client.
func New(api botAPI, noteSvc noteService, ask asker, led ledger, opts Options, logger *slog.Logger) *Bot {
	if opts.ForwardDebounce <= 0 {
		opts.ForwardDebounce = 500 * time.Millisecond
	}
	if opts.Currency == "" {
		opts.Currency = "XTR"
	}

	b := &Bot{
		api:    api,
		notes:  noteSvc,
		asker:  ask,
		ledger: led,
		opts:   opts,
		log:    logger.With("transport", "telegram"),
		http:   &http.Client{Timeout: time.Minute},
		now:    time.Now,
	}
	b.forwards = NewDebouncer(opts.ForwardDebounce, b.flushForwarded)
	return b
}

// Run polls for updates until ctx is cancelled. Each update is handled on
// its own goroutine; Run returns after all of them finished.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.opts.PollTimeout
	updates := b.api.GetUpdatesChan(cfg)

	b.log.InfoContext(ctx, "bot polling started", slog.String("username", b.opts.BotUsername))

	var wg sync.WaitGroup
	defer func() {
		b.api.StopReceivingUpdates()
		wg.Wait()
		b.forwards.Close()
		b.log.Info("bot stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				uctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), updateTimeout)
				defer cancel()
				b.handleUpdate(uctx, upd)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.ErrorContext(ctx, "panic in update handler",
				slog.Int("update_id", upd.UpdateID),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	switch {
	case upd.PreCheckoutQuery != nil:
		b.handlePreCheckout(ctx, upd.PreCheckoutQuery)
	case upd.InlineQuery != nil:
		b.handleInlineQuery(ctx, upd.InlineQuery)
	case upd.Message != nil:
		b.handleMessage(ctx, upd.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.From.IsBot {
		return
	}

	if !b.allowed(msg.From.ID) {
		if msg.IsCommand() && msg.Command() == "start" {
			b.reply(ctx, msg.Chat.ID, msgAccessDenied, nil)
		}
		return
	}

	ctx, user, err := b.identify(ctx, msg.From)
	if err != nil {
		b.log.ErrorContext(ctx, "identify user",
			slog.Int64("telegram_id", msg.From.ID),
			slog.String("error", err.Error()),
		)
		b.reply(ctx, msg.Chat.ID, msgProcessingFailed, nil)
		return
	}

	switch {
	case msg.SuccessfulPayment != nil:
		b.handlePayment(ctx, msg, user)
	case msg.IsCommand():
		b.handleCommand(ctx, msg, user)
	case msg.Voice != nil:
		b.handleVoice(ctx, msg, user)
	case strings.TrimSpace(msg.Text) != "":
		if msg.ForwardDate != 0 {
			b.forwards.Add(msg.From.ID, forwardedText{
				ChatID:     msg.Chat.ID,
				UserID:     user.ID,
				TelegramID: msg.From.ID,
				Text:       strings.TrimSpace(msg.Text),
			})
			return
		}
		b.handleText(ctx, msg)
	}
}

func (b *Bot) allowed(telegramID int64) bool {
	return b.opts.AllowUser == nil || b.opts.AllowUser(telegramID)
}

// identify get-or-creates the sender and returns a context carrying the
// user's ids.
func (b *Bot) identify(ctx context.Context, from *tgbotapi.User) (context.Context, *domain.User, error) {
	lang := from.LanguageCode
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	u, err := b.notes.GetOrCreateUser(ctx, domain.TelegramProfile{
		TelegramID:   from.ID,
		Username:     optional(from.UserName),
		FirstName:    optional(from.FirstName),
		LanguageCode: lang,
	})
	if err != nil {
		return ctx, nil, fmt.Errorf("get or create user: %w", err)
	}
	return userContext(ctx, u.ID, from.ID), u, nil
}

func userContext(ctx context.Context, userID uuid.UUID, telegramID int64) context.Context {
	return ctxutil.WithTelegramID(ctxutil.WithUserID(ctx, userID), telegramID)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// reply sends an HTML message. It returns the sent message id, or 0 when
// sending failed.
func (b *Bot) reply(ctx context.Context, chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) int {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeHTML
	m.DisableWebPagePreview = true
	if markup != nil {
		m.ReplyMarkup = *markup
	}

	sent, err := b.api.Send(m)
	if err != nil {
		b.log.WarnContext(ctx, "send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		return 0
	}
	return sent.MessageID
}

// edit replaces the text of a status message. Without a status message it
// sends a new one.
func (b *Bot) edit(ctx context.Context, chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	if messageID == 0 {
		b.reply(ctx, chatID, text, markup)
		return
	}

	e := tgbotapi.NewEditMessageText(chatID, messageID, text)
	e.ParseMode = tgbotapi.ModeHTML
	e.DisableWebPagePreview = true
	e.ReplyMarkup = markup

	if _, err := b.api.Send(e); err != nil {
		b.log.WarnContext(ctx, "edit message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		b.reply(ctx, chatID, text, markup)
	}
}

func (b *Bot) remove(ctx context.Context, chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.WarnContext(ctx, "delete message", slog.String("error", err.Error()))
	}
}

// notesKeyboard opens the mini app. It is nil when no mini app is
// configured.
func (b *Bot) notesKeyboard() *tgbotapi.InlineKeyboardMarkup {
	if b.opts.WebAppURL == "" {
		return nil
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(btnOpenNotes, b.opts.WebAppURL)),
	)
	return &kb
}
