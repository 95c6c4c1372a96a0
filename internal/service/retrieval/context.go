package retrieval

import "github.com/heartmarshall/fixnote-backend/internal/domain"

// ContextNote is one note prepared for a language-model prompt.
type ContextNote struct {
	Text       string
	Similarity float64
}

// BuildContext selects the text of each result for a prompt: the summary
// when present, otherwise the first ContextNoteChars runes of the content.
func (s *Service) BuildContext(results []domain.SearchResult) []ContextNote {
	notes := make([]ContextNote, 0, len(results))
	for _, r := range results {
		text := domain.TruncateRunes(r.Content, s.cfg.ContextNoteChars)
		if r.Summary != nil && *r.Summary != "" {
			text = *r.Summary
		}
		notes = append(notes, ContextNote{Text: text, Similarity: r.Similarity})
	}
	return notes
}
