package note

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	postgres "github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// SetEmbedding replaces the embedding of a note with a single-row update.
func (r *Repo) SetEmbedding(ctx context.Context, noteID uuid.UUID, embedding []float32) error {
	query := postgres.Builder.Update(table).
		Set("embedding", pgvector.NewVector(embedding)).
		Where(sq.Eq{"id": noteID})

	return r.execOne(ctx, query, noteID)
}

type similarRow struct {
	ID         uuid.UUID `db:"id"`
	Content    string    `db:"content"`
	Summary    *string   `db:"summary"`
	Similarity float64   `db:"similarity"`
	CreatedAt  time.Time `db:"created_at"`
}

// SearchSimilar returns up to limit of the user's indexed notes closest to
// embedding by cosine distance. Unindexed notes never match.
func (r *Repo) SearchSimilar(ctx context.Context, userID uuid.UUID, embedding []float32, limit int) ([]domain.SearchResult, error) {
	vec := pgvector.NewVector(embedding)

	sql, args, err := postgres.Builder.
		Select("id", "content", "summary", "created_at").
		Column(sq.Expr("1 - (embedding <=> ?) AS similarity", vec)).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		Where("embedding IS NOT NULL").
		OrderByClause("embedding <=> ?", vec).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build similarity query: %w", err)
	}

	var rows []similarRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "similar notes of user", userID)
	}

	results := make([]domain.SearchResult, len(rows))
	for i, rw := range rows {
		results[i] = domain.SearchResult{
			ID:         rw.ID,
			Content:    rw.Content,
			Summary:    rw.Summary,
			Similarity: clamp01(rw.Similarity),
			CreatedAt:  rw.CreatedAt,
		}
	}
	return results, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

type ftsRow struct {
	ID        uuid.UUID `db:"id"`
	Content   string    `db:"content"`
	Summary   *string   `db:"summary"`
	Rank      float64   `db:"rank"`
	CreatedAt time.Time `db:"created_at"`
}

// SearchFullText matches the user's notes against a web-search style query
// and orders them by ts_rank.
func (r *Repo) SearchFullText(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.FTSResult, error) {
	sql, args, err := postgres.Builder.
		Select("id", "content", "summary", "created_at").
		Column(sq.Expr("ts_rank(search_tsv, websearch_to_tsquery('simple', ?)) AS rank", query)).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Expr("search_tsv @@ websearch_to_tsquery('simple', ?)", query)).
		OrderBy("rank DESC", "created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build full-text query: %w", err)
	}

	var rows []ftsRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "full-text notes of user", userID)
	}

	results := make([]domain.FTSResult, len(rows))
	for i, rw := range rows {
		results[i] = domain.FTSResult{
			ID:        rw.ID,
			Content:   rw.Content,
			Summary:   rw.Summary,
			Rank:      rw.Rank,
			CreatedAt: rw.CreatedAt,
		}
	}
	return results, nil
}

