package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

const requestIDHeader = "X-Request-Id"

const maxRequestIDLen = 64

// RequestID propagates the caller's X-Request-Id or assigns a new one.
// Oversized ids are replaced.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
