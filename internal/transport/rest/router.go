package rest

import (
	"net/http"

	"github.com/heartmarshall/fixnote-backend/internal/transport/middleware"
)

// RouterDeps collects what NewRouter mounts.
type RouterDeps struct {
	Health  *HealthHandler
	Notes   *NoteHandler
	Account *AccountHandler

	// Auth identifies the caller; it runs on every /api route and lets
	// anonymous requests through.
	Auth middleware.Middleware
	// AuthLimit guards the token exchange, APILimit everything else.
	AuthLimit middleware.Middleware
	APILimit  middleware.Middleware
}

// NewRouter registers every route on a ServeMux. The caller wraps the result
// in the global middleware chain.
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	api := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(d.APILimit, d.Auth, middleware.Identified)(h)
	}

	mux.HandleFunc("GET /health", d.Health.Live)
	mux.HandleFunc("GET /api/health", d.Health.Health)

	mux.Handle("POST /api/auth/telegram", middleware.Chain(d.AuthLimit)(http.HandlerFunc(d.Account.TelegramLogin)))

	mux.Handle("GET /api/notes", api(d.Notes.List))
	mux.Handle("POST /api/notes", api(d.Notes.Create))
	mux.Handle("POST /api/notes/search", api(d.Notes.Search))
	mux.Handle("POST /api/notes/search/fts", api(d.Notes.SearchFullText))
	mux.Handle("GET /api/notes/{id}", api(d.Notes.Get))
	mux.Handle("PUT /api/notes/{id}", api(d.Notes.Update))
	mux.Handle("DELETE /api/notes/{id}", api(d.Notes.Delete))
	mux.Handle("POST /api/notes/{id}/share", api(d.Notes.Share))
	mux.Handle("DELETE /api/notes/{id}/share", api(d.Notes.RevokeShare))
	mux.Handle("GET /api/shared/{token}", api(d.Notes.Shared))
	mux.Handle("GET /api/stats", api(d.Notes.Stats))

	mux.Handle("GET /api/subscription", api(d.Account.Subscription))
	mux.Handle("POST /api/subscription/invoice", api(d.Account.CreateInvoice))
	mux.Handle("PUT /api/user/language", api(d.Account.UpdateLanguage))
	mux.Handle("POST /api/prompt-add-note", api(d.Account.PromptAddNote))

	return mux
}
