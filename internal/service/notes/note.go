package notes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

// CreateNote stores a note for the authenticated user and indexes it. An
// indexing failure leaves the note unindexed but does not fail creation.
func (s *Service) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return s.create(ctx, userID, input)
}

func (s *Service) create(ctx context.Context, userID uuid.UUID, input CreateNoteInput) (*domain.Note, error) {
	now := s.now().UTC()
	n, err := s.notes.Create(ctx, domain.Note{
		ID:              uuid.New(),
		UserID:          userID,
		Content:         input.Content,
		Summary:         input.Summary,
		Source:          input.Source,
		DurationSeconds: input.DurationSeconds,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("notes.CreateNote: %w", err)
	}

	indexed := s.index.IndexNote(ctx, n.ID, n.Content)

	s.log.InfoContext(ctx, "note created",
		slog.String("user_id", userID.String()),
		slog.String("note_id", n.ID.String()),
		slog.String("source", n.Source.String()),
		slog.Bool("indexed", indexed),
	)
	return n, nil
}

// GetNote returns a note of the authenticated user.
func (s *Service) GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	n, err := s.notes.GetByID(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("notes.GetNote: %w", err)
	}
	return n, nil
}

// ListNotes returns a page of the user's notes, newest first, and the total.
// A zero limit means 50.
func (s *Service) ListNotes(ctx context.Context, limit, offset int) ([]domain.Note, int, error) {
	limit, err := clampLimit(limit, defaultListLimit, maxListLimit)
	if err != nil {
		return nil, 0, err
	}
	if offset < 0 {
		return nil, 0, domain.NewValidationError("offset", "must not be negative")
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	list, total, err := s.notes.List(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("notes.ListNotes: %w", err)
	}
	return list, total, nil
}

// UpdateNote edits a note. A content change re-indexes the note.
func (s *Service) UpdateNote(ctx context.Context, noteID uuid.UUID, input UpdateNoteInput) (*domain.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	n, err := s.notes.Update(ctx, userID, noteID, domain.NoteUpdate{Content: input.Content, Summary: input.Summary})
	if err != nil {
		return nil, fmt.Errorf("notes.UpdateNote: %w", err)
	}

	if input.Content != nil {
		s.index.IndexNote(ctx, n.ID, n.Content)
	}
	return n, nil
}

// DeleteNote removes a note of the authenticated user.
func (s *Service) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.notes.Delete(ctx, userID, noteID); err != nil {
		return fmt.Errorf("notes.DeleteNote: %w", err)
	}

	s.log.InfoContext(ctx, "note deleted",
		slog.String("user_id", userID.String()),
		slog.String("note_id", noteID.String()),
	)
	return nil
}

// SearchFullText runs a keyword search over the user's notes. A blank query
// yields no results.
func (s *Service) SearchFullText(ctx context.Context, query string, limit int) ([]domain.FTSResult, error) {
	limit, err := clampLimit(limit, defaultFTSLimit, maxFTSLimit)
	if err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if isBlank(query) {
		return []domain.FTSResult{}, nil
	}

	res, err := s.notes.SearchFullText(ctx, userID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("notes.SearchFullText: %w", err)
	}
	return res, nil
}

// Stats returns counters over the user's notes.
func (s *Service) Stats(ctx context.Context) (domain.NoteStats, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.NoteStats{}, domain.ErrUnauthorized
	}

	st, err := s.notes.Stats(ctx, userID, s.now())
	if err != nil {
		return domain.NoteStats{}, fmt.Errorf("notes.Stats: %w", err)
	}
	return st, nil
}
