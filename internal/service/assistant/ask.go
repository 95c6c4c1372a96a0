package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/provider"
	"github.com/heartmarshall/fixnote-backend/internal/service/retrieval"
	"github.com/heartmarshall/fixnote-backend/pkg/ctxutil"
)

// Answer is the result of a question. Denied is set when the plan has no
// chat access. NoRelevantNotes means nothing passed the similarity cutoff
// and the model was not called.
type Answer struct {
	Text            string
	Denied          *domain.FeatureDecision
	NoRelevantNotes bool
	Sources         []domain.SearchResult
}

// Ask answers question from the authenticated user's notes. Provider
// failures produce an apology text; they are not returned as errors and
// are not metered.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Answer{}, domain.NewValidationError("question", "required")
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Answer{}, domain.ErrUnauthorized
	}

	if d := s.ledger.CanUseFeature(ctx, userID, domain.FeatureChat); !d.Allowed {
		return Answer{Denied: &d}, nil
	}

	results := s.retriever.SearchWithThreshold(ctx, question, userID, s.cfg.ContextLimit, s.cfg.MinSimilarity)
	if len(results) == 0 {
		return Answer{Text: noNotesAnswer, NoRelevantNotes: true, Sources: results}, nil
	}

	text, err := s.chat.Complete(ctx, provider.ChatRequest{
		System:      answerSystemPrompt,
		User:        "Контекст из заметок:\n\n" + formatContext(s.retriever.BuildContext(results)) + "\n\n---\n\nВопрос: " + question,
		MaxTokens:   1000,
		Temperature: 0.5,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "ask: completion failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return Answer{Text: failedAnswer, Sources: results}, nil
	}

	s.ledger.IncrementUsage(ctx, userID, domain.UsageChatMessages, 1)

	s.log.InfoContext(ctx, "question answered",
		slog.String("user_id", userID.String()),
		slog.Int("sources", len(results)),
	)
	return Answer{Text: strings.TrimSpace(text), Sources: results}, nil
}

// SemanticSearch is the chat-gated search of the mini app. Each call meters
// one chat message.
func (s *Service) SemanticSearch(ctx context.Context, query string, limit int) ([]domain.SearchResult, *domain.FeatureDecision, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}

	if d := s.ledger.CanUseFeature(ctx, userID, domain.FeatureChat); !d.Allowed {
		return nil, &d, nil
	}

	results := s.retriever.Search(ctx, query, userID, limit)
	s.ledger.IncrementUsage(ctx, userID, domain.UsageChatMessages, 1)
	return results, nil, nil
}

func formatContext(notes []retrieval.ContextNote) string {
	parts := make([]string, 0, len(notes))
	for i, n := range notes {
		parts = append(parts, fmt.Sprintf("[Заметка %d] (релевантность: %.0f%%)\n%s", i+1, n.Similarity*100, n.Text))
	}
	return strings.Join(parts, "\n\n")
}
