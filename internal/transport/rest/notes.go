package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/service/notes"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

type notesService interface {
	CreateNote(ctx context.Context, input notes.CreateNoteInput) (*domain.Note, error)
	GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)
	ListNotes(ctx context.Context, limit, offset int) ([]domain.Note, int, error)
	UpdateNote(ctx context.Context, noteID uuid.UUID, input notes.UpdateNoteInput) (*domain.Note, error)
	DeleteNote(ctx context.Context, noteID uuid.UUID) error
	Share(ctx context.Context, noteID uuid.UUID, isPublic bool) (string, error)
	RevokeShare(ctx context.Context, noteID uuid.UUID) error
	GetShared(ctx context.Context, token string, viewerTelegramID *int64) (notes.SharedView, error)
	SearchFullText(ctx context.Context, query string, limit int) ([]domain.FTSResult, error)
	Stats(ctx context.Context) (domain.NoteStats, error)
}

type semanticSearcher interface {
	SemanticSearch(ctx context.Context, query string, limit int) ([]domain.SearchResult, *domain.FeatureDecision, error)
}

// NoteHandler serves the note endpoints of the mini app.
type NoteHandler struct {
	svc       notesService
	search    semanticSearcher
	publicURL string
	log       *slog.Logger
}

// NewNoteHandler creates a NoteHandler. publicURL is the base of share links.
func NewNoteHandler(svc notesService, search semanticSearcher, publicURL string, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		svc:       svc,
		search:    search,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       logger.With("handler", "notes"),
	}
}

type createNoteRequest struct {
	Content         string  `json:"content"`
	Summary         *string `json:"summary"`
	Source          string  `json:"source"`
	DurationSeconds *int    `json:"duration_seconds"`
}

type updateNoteRequest struct {
	Content *string `json:"content"`
	Summary *string `json:"summary"`
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// List handles GET /api/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	list, total, err := h.svc.ListNotes(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := notesListResponse{Notes: make([]noteResponse, 0, len(list)), Total: total}
	for _, n := range list {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	n, err := h.svc.GetNote(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(*n))
}

// Create handles POST /api/notes.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Source == "" {
		req.Source = domain.NoteSourceText.String()
	}

	n, err := h.svc.CreateNote(r.Context(), notes.CreateNoteInput{
		Content:         req.Content,
		Summary:         req.Summary,
		Source:          domain.NoteSource(req.Source),
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteResponse(*n))
}

// Update handles PUT /api/notes/{id}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req updateNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := h.svc.UpdateNote(r.Context(), id, notes.UpdateNoteInput{Content: req.Content, Summary: req.Summary})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(*n))
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteNote(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Search handles POST /api/notes/search. Semantic search needs a plan with
// chat access.
func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Limit < 0 || req.Limit > 20 {
		writeServiceError(w, r, h.log, domain.NewValidationError("limit", "must be between 1 and 20"))
		return
	}

	results, denied, err := h.search.SemanticSearch(r.Context(), req.Query, req.Limit)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	if denied != nil {
		writeError(w, http.StatusForbidden, "AI search not available on "+denied.Plan.String()+" plan. Please upgrade your subscription.")
		return
	}

	resp := searchResponse{Results: make([]searchResultResponse, 0, len(results)), Query: req.Query}
	for _, res := range results {
		resp.Results = append(resp.Results, searchResultResponse{
			ID:         res.ID.String(),
			Content:    res.Content,
			Summary:    res.Summary,
			Similarity: res.Similarity,
			CreatedAt:  res.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// SearchFullText handles POST /api/notes/search/fts.
func (h *NoteHandler) SearchFullText(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	results, err := h.svc.SearchFullText(r.Context(), req.Query, req.Limit)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	resp := ftsResponse{Results: make([]ftsResultResponse, 0, len(results)), Query: req.Query}
	for _, res := range results {
		resp.Results = append(resp.Results, ftsResultResponse{
			ID:        res.ID.String(),
			Content:   res.Content,
			Summary:   res.Summary,
			Rank:      res.Rank,
			CreatedAt: res.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Share handles POST /api/notes/{id}/share?is_public=.
func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	isPublic := true
	if raw := r.URL.Query().Get("is_public"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeServiceError(w, r, h.log, domain.NewValidationError("is_public", "must be a boolean"))
			return
		}
		isPublic = v
	}

	token, err := h.svc.Share(r.Context(), id, isPublic)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{
		ShareURL:   h.publicURL + "/note/" + token,
		ShareToken: token,
		IsPublic:   isPublic,
	})
}

// RevokeShare handles DELETE /api/notes/{id}/share.
func (h *NoteHandler) RevokeShare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.RevokeShare(r.Context(), id); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Shared handles GET /api/shared/{token}. Authentication is optional; it
// only decides ownership.
func (h *NoteHandler) Shared(w http.ResponseWriter, r *http.Request) {
	var viewer *int64
	if tg, ok := ctxutil.TelegramIDFromCtx(r.Context()); ok {
		viewer = &tg
	}

	view, err := h.svc.GetShared(r.Context(), r.PathValue("token"), viewer)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	n := view.Note
	writeJSON(w, http.StatusOK, sharedNoteResponse{
		Note: publicNoteResponse{
			ID:              n.ID.String(),
			Content:         n.Content,
			Summary:         n.Summary,
			Source:          n.Source.String(),
			DurationSeconds: n.DurationSeconds,
			CreatedAt:       n.CreatedAt,
		},
		IsOwner: view.IsOwner,
		CanEdit: view.CanEdit,
	})
}

// Stats handles GET /api/stats.
func (h *NoteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		TotalNotes:     st.Total,
		VoiceNotes:     st.Voice,
		TextNotes:      st.Text,
		NotesThisWeek:  st.ThisWeek,
		NotesThisMonth: st.ThisMonth,
	})
}
