package retrieval

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// Search returns up to limit of the user's notes most similar to query,
// ordered by similarity DESC then created_at DESC. limit 0 means the default
// limit; larger values are clamped to the maximum. Failures are logged and
// yield an empty result.
func (s *Service) Search(ctx context.Context, query string, userID uuid.UUID, limit int) []domain.SearchResult {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}
	}
	limit = s.clampLimit(limit)

	vec, err := s.Embed(ctx, query)
	if err != nil {
		s.log.ErrorContext(ctx, "search: embed failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return []domain.SearchResult{}
	}

	results, err := s.store.SearchSimilar(ctx, userID, vec, limit)
	if err != nil {
		s.log.ErrorContext(ctx, "search: store failed",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return []domain.SearchResult{}
	}

	slices.SortStableFunc(results, func(a, b domain.SearchResult) int {
		switch {
		case a.Similarity > b.Similarity:
			return -1
		case a.Similarity < b.Similarity:
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// SearchWithThreshold runs Search and drops results strictly below
// minSimilarity. Order is preserved.
func (s *Service) SearchWithThreshold(ctx context.Context, query string, userID uuid.UUID, limit int, minSimilarity float64) []domain.SearchResult {
	results := s.Search(ctx, query, userID, limit)

	kept := results[:0]
	for _, r := range results {
		if r.Similarity >= minSimilarity {
			kept = append(kept, r)
		}
	}
	return kept
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	if limit < 1 {
		limit = 1
	}
	return limit
}
