package assistant

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/fixnote-backend/internal/provider"
)

const minSummaryInput = 20

// Summarize writes a short summary of text. Texts under 20 characters and
// provider failures yield ("", false).
func (s *Service) Summarize(ctx context.Context, text string) (string, bool) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minSummaryInput {
		return "", false
	}

	out, err := s.chat.Complete(ctx, provider.ChatRequest{
		System:      summarySystemPrompt,
		User:        summaryUserPrefix + text,
		MaxTokens:   500,
		Temperature: 0.3,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "summarize failed", slog.String("error", err.Error()))
		return "", false
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", false
	}
	return out, true
}
