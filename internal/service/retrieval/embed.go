package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// Embed returns the embedding of the first MaxInputChars runes of text.
// Provider failures wrap domain.ErrProvider.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text", "required")
	}

	vec, err := s.embedder.Embed(ctx, domain.TruncateRunes(text, s.cfg.MaxInputChars))
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return vec, nil
}

// IndexNote embeds text and stores it as the note's embedding. Failures are
// logged and reported as false; the previous embedding is left in place.
func (s *Service) IndexNote(ctx context.Context, noteID uuid.UUID, text string) bool {
	vec, err := s.Embed(ctx, text)
	if err != nil {
		s.log.ErrorContext(ctx, "index note: embed failed",
			slog.String("note_id", noteID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}

	if err := s.store.SetEmbedding(ctx, noteID, vec); err != nil {
		s.log.ErrorContext(ctx, "index note: store failed",
			slog.String("note_id", noteID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}

	s.log.DebugContext(ctx, "note indexed", slog.String("note_id", noteID.String()))
	return true
}
