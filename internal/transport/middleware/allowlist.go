package middleware

import (
	"net/http"

	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

// AllowList rejects authenticated callers whose telegram id is not allowed.
// Anonymous requests are left to the handlers.
func AllowList(allowed func(telegramID int64) bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := ctxutil.TelegramIDFromCtx(r.Context()); ok && !allowed(id) {
				http.Error(w, "access denied", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
