package middleware

import (
	"context"
	"net/http"

	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

type probeKey struct{}

// identityProbe lets Logger see the user id that Auth put on a derived
// request context.
type identityProbe struct {
	userID string
}

func withProbe(ctx context.Context, p *identityProbe) context.Context {
	return context.WithValue(ctx, probeKey{}, p)
}

// Identified records the authenticated user for the access log. It must be
// the innermost middleware.
func Identified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := r.Context().Value(probeKey{}).(*identityProbe); ok {
			if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
				p.userID = id.String()
			}
		}
		next.ServeHTTP(w, r)
	})
}
