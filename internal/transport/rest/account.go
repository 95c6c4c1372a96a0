package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/auth"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

type initDataValidator interface {
	Validate(raw string) (auth.TelegramIdentity, error)
}

type userService interface {
	GetOrCreateUser(ctx context.Context, p domain.TelegramProfile) (*domain.User, error)
	UpdateLanguage(ctx context.Context, lang string) error
}

type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, telegramID int64) (string, error)
	AccessTTL() time.Duration
}

type subscriptionService interface {
	GetSubscriptionInfo(ctx context.Context, userID uuid.UUID) (domain.SubscriptionInfo, error)
	GetLimits(plan domain.Plan) domain.SubscriptionLimits
}

// BotGateway is the part of the chat bot the API calls into. It is nil when
// the bot is not running.
type BotGateway interface {
	CreateInvoiceLink(ctx context.Context, payload domain.InvoicePayload, amount int) (string, error)
	PromptAddNote(ctx context.Context, telegramID int64) error
}

// AccountHandler serves session, subscription and user settings endpoints.
type AccountHandler struct {
	initData initDataValidator
	users    userService
	tokens   tokenIssuer
	subs     subscriptionService
	bot      BotGateway
	log      *slog.Logger
}

// NewAccountHandler creates an AccountHandler. bot may be nil.
func NewAccountHandler(
	initData initDataValidator,
	users userService,
	tokens tokenIssuer,
	subs subscriptionService,
	bot BotGateway,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		initData: initData,
		users:    users,
		tokens:   tokens,
		subs:     subs,
		bot:      bot,
		log:      logger.With("handler", "account"),
	}
}

type telegramAuthRequest struct {
	InitData string `json:"init_data"`
}

type telegramAuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        userResponse `json:"user"`
}

type invoiceRequest struct {
	Plan          string `json:"plan"`
	BillingPeriod string `json:"billing_period"`
}

type invoiceResponse struct {
	InvoiceLink   string `json:"invoice_link"`
	Plan          string `json:"plan"`
	BillingPeriod string `json:"billing_period"`
	Amount        int    `json:"amount"`
}

type languageRequest struct {
	Language string `json:"language"`
}

// TelegramLogin handles POST /api/auth/telegram. It exchanges WebApp init
// data for a bearer token.
func (h *AccountHandler) TelegramLogin(w http.ResponseWriter, r *http.Request) {
	var req telegramAuthRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ident, err := h.initData.Validate(req.InitData)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	u, err := h.users.GetOrCreateUser(r.Context(), ident.Profile())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	token, err := h.tokens.GenerateAccessToken(u.ID, u.TelegramID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, telegramAuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.tokens.AccessTTL().Seconds()),
		User:        toUserResponse(*u),
	})
}

// Subscription handles GET /api/subscription.
func (h *AccountHandler) Subscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeServiceError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	info, err := h.subs.GetSubscriptionInfo(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionResponse(info))
}

// CreateInvoice handles POST /api/subscription/invoice.
func (h *AccountHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeServiceError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	var req invoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	plan, period := domain.Plan(req.Plan), domain.BillingPeriod(req.BillingPeriod)
	var errs []domain.FieldError
	if !plan.IsPaid() {
		errs = append(errs, domain.FieldError{Field: "plan", Message: "must be pro or ultra"})
	}
	if !period.IsValid() {
		errs = append(errs, domain.FieldError{Field: "billing_period", Message: "must be monthly or yearly"})
	}
	if len(errs) > 0 {
		writeServiceError(w, r, h.log, domain.NewValidationErrors(errs))
		return
	}

	if h.bot == nil {
		writeError(w, http.StatusServiceUnavailable, "bot not available")
		return
	}

	amount := h.subs.GetLimits(plan).Price(period)
	payload := domain.InvoicePayload{UserID: userID, Plan: plan, Period: period, Nonce: uuid.NewString()[:8]}

	link, err := h.bot.CreateInvoiceLink(r.Context(), payload, amount)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, invoiceResponse{
		InvoiceLink:   link,
		Plan:          plan.String(),
		BillingPeriod: period.String(),
		Amount:        amount,
	})
}

// UpdateLanguage handles PUT /api/user/language.
func (h *AccountHandler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.UpdateLanguage(r.Context(), req.Language); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// PromptAddNote handles POST /api/prompt-add-note: the bot asks the user in
// chat for a new note.
func (h *AccountHandler) PromptAddNote(w http.ResponseWriter, r *http.Request) {
	tg, ok := ctxutil.TelegramIDFromCtx(r.Context())
	if !ok {
		writeServiceError(w, r, h.log, domain.ErrUnauthorized)
		return
	}
	if h.bot == nil {
		writeError(w, http.StatusServiceUnavailable, "bot not available")
		return
	}

	if err := h.bot.PromptAddNote(r.Context(), tg); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
