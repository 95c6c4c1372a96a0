package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// handlePreCheckout approves every checkout; the payload is checked once
// the payment succeeded.
func (b *Bot) handlePreCheckout(ctx context.Context, q *tgbotapi.PreCheckoutQuery) {
	_, err := b.api.Request(tgbotapi.PreCheckoutConfig{PreCheckoutQueryID: q.ID, OK: true})
	if err != nil {
		b.log.ErrorContext(ctx, "answer pre-checkout",
			slog.String("payload", q.InvoicePayload),
			slog.String("error", err.Error()),
		)
	}
}

func (b *Bot) handlePayment(ctx context.Context, msg *tgbotapi.Message, user *domain.User) {
	sp := msg.SuccessfulPayment
	chatID := msg.Chat.ID

	payload, err := domain.ParseInvoicePayload(sp.InvoicePayload)
	if err != nil {
		b.log.ErrorContext(ctx, "invalid payment payload",
			slog.String("payload", sp.InvoicePayload),
			slog.String("charge_id", sp.TelegramPaymentChargeID),
		)
		b.reply(ctx, chatID, msgPaymentFailed, nil)
		return
	}
	if payload.UserID != user.ID {
		b.log.WarnContext(ctx, "payment for another user",
			slog.String("payer", user.ID.String()),
			slog.String("beneficiary", payload.UserID.String()),
		)
	}

	activated, err := b.ledger.ConfirmPayment(ctx, domain.Payment{
		ID:        uuid.New(),
		ChargeID:  sp.TelegramPaymentChargeID,
		UserID:    payload.UserID,
		Plan:      payload.Plan,
		Period:    payload.Period,
		Amount:    sp.TotalAmount,
		Currency:  sp.Currency,
		CreatedAt: b.now().UTC(),
	})
	switch {
	case err != nil:
		b.log.ErrorContext(ctx, "confirm payment",
			slog.String("user_id", payload.UserID.String()),
			slog.String("charge_id", sp.TelegramPaymentChargeID),
			slog.String("error", err.Error()),
		)
		b.reply(ctx, chatID, msgPaymentActivationFailed, nil)
	case !activated:
		// Replayed charge: the subscription is already in place.
	default:
		period := "месяц"
		if payload.Period == domain.BillingYearly {
			period = "год"
		}
		b.reply(ctx, chatID, fmt.Sprintf(msgPaymentActivated, planTitle(payload.Plan), period), nil)
	}
}

// CreateInvoiceLink creates a Telegram Stars invoice link for a plan
// purchase.
func (b *Bot) CreateInvoiceLink(ctx context.Context, payload domain.InvoicePayload, amount int) (string, error) {
	if !payload.Plan.IsPaid() || !payload.Period.IsValid() {
		return "", domain.NewValidationError("plan", "not purchasable")
	}
	if amount <= 0 {
		return "", domain.NewValidationError("amount", "must be positive")
	}

	period := "месяц"
	if payload.Period == domain.BillingYearly {
		period = "год"
	}
	title := "FixNote " + planTitle(payload.Plan)

	params := tgbotapi.Params{}
	params["title"] = title
	params["description"] = fmt.Sprintf("Подписка %s на %s", planTitle(payload.Plan), period)
	params["payload"] = payload.String()
	params["currency"] = b.opts.Currency
	if err := params.AddInterface("prices", []tgbotapi.LabeledPrice{{Label: title, Amount: amount}}); err != nil {
		return "", fmt.Errorf("encode prices: %w", err)
	}

	resp, err := b.api.MakeRequest("createInvoiceLink", params)
	if err != nil {
		return "", domain.NewProviderError("telegram", err)
	}

	var link string
	if err := json.Unmarshal(resp.Result, &link); err != nil {
		return "", domain.NewProviderError("telegram", fmt.Errorf("decode invoice link: %w", err))
	}
	if link == "" {
		return "", domain.NewProviderError("telegram", errors.New("empty invoice link"))
	}

	b.log.InfoContext(ctx, "invoice link created",
		slog.String("user_id", payload.UserID.String()),
		slog.String("plan", payload.Plan.String()),
		slog.String("period", payload.Period.String()),
		slog.Int("amount", amount),
	)
	return link, nil
}

// PromptAddNote asks the user in chat for a new note.
func (b *Bot) PromptAddNote(ctx context.Context, telegramID int64) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(telegramID, msgPromptAddNote)); err != nil {
		return domain.NewProviderError("telegram", err)
	}
	return nil
}
