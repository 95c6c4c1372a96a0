package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/auth"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

// InitDataHeader carries the raw Telegram WebApp init data.
const InitDataHeader = "X-Telegram-Init-Data"

type initDataValidator interface {
	Validate(raw string) (auth.TelegramIdentity, error)
}

type userResolver interface {
	GetOrCreateUser(ctx context.Context, p domain.TelegramProfile) (*domain.User, error)
}

type tokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, int64, error)
}

// Auth identifies the caller from Telegram init data or a bearer token and
// stores the user id and telegram id in the request context. Requests with
// neither pass through anonymously; invalid credentials get 401.
func Auth(logger *slog.Logger, initData initDataValidator, users userResolver, tokens tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if raw := r.Header.Get(InitDataHeader); raw != "" {
				ident, err := initData.Validate(raw)
				if err != nil {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				u, err := users.GetOrCreateUser(ctx, ident.Profile())
				if err != nil {
					logger.ErrorContext(ctx, "auth: resolve user failed",
						slog.Int64("telegram_id", ident.ID),
						slog.String("error", err.Error()),
					)
					http.Error(w, "internal server error", http.StatusInternalServerError)
					return
				}
				next.ServeHTTP(w, r.WithContext(withIdentity(ctx, u.ID, u.TelegramID)))
				return
			}

			if token := extractBearerToken(r); token != "" {
				userID, telegramID, err := tokens.ValidateAccessToken(token)
				if err != nil {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, r.WithContext(withIdentity(ctx, userID, telegramID)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withIdentity(ctx context.Context, userID uuid.UUID, telegramID int64) context.Context {
	return ctxutil.WithTelegramID(ctxutil.WithUserID(ctx, userID), telegramID)
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) < 7 || !strings.EqualFold(h[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}
