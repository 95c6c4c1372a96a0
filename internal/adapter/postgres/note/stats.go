package note

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// Stats counts the user's notes by source and recency relative to now.
func (r *Repo) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (domain.NoteStats, error) {
	sql, args, err := postgres.Builder.
		Select("count(*)").
		Column("count(*) FILTER (WHERE source = 'voice')").
		Column("count(*) FILTER (WHERE source = 'text')").
		Column(sq.Expr("count(*) FILTER (WHERE created_at >= ?)", now.Add(-7*24*time.Hour))).
		Column(sq.Expr("count(*) FILTER (WHERE created_at >= ?)", now.Add(-30*24*time.Hour))).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return domain.NoteStats{}, fmt.Errorf("build stats query: %w", err)
	}

	var s domain.NoteStats
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).
		Scan(&s.Total, &s.Voice, &s.Text, &s.ThisWeek, &s.ThisMonth)
	if err != nil {
		return domain.NoteStats{}, postgres.MapError(err, "note stats of user", userID)
	}
	return s, nil
}
