// Package usage implements the monthly usage ledger using PostgreSQL.
package usage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

const table = "usage_stats"

// counterColumns whitelists the column each usage type increments.
var counterColumns = map[domain.UsageType]string{
	domain.UsageSummaries:    "summaries_used",
	domain.UsageVoiceSeconds: "voice_seconds_used",
	domain.UsageChatMessages: "chat_messages_used",
}

// Repo provides usage counters backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new usage repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Increment adds amount to one counter of the user's month in a single
// upsert, so concurrent increments never lose updates.
func (r *Repo) Increment(ctx context.Context, userID uuid.UUID, monthStart time.Time, usageType domain.UsageType, amount int) error {
	col, ok := counterColumns[usageType]
	if !ok {
		return domain.NewValidationError("usage_type", "unknown usage type")
	}

	sql, args, err := postgres.Builder.Insert(table).
		Columns("user_id", "month_start", col).
		Values(userID, monthStart, amount).
		Suffix(fmt.Sprintf(
			"ON CONFLICT (user_id, month_start) DO UPDATE SET %[1]s = %[2]s.%[1]s + EXCLUDED.%[1]s, updated_at = now()",
			col, table,
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build increment query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "usage of user", userID)
	}
	return nil
}

type row struct {
	UserID           uuid.UUID `db:"user_id"`
	MonthStart       time.Time `db:"month_start"`
	SummariesUsed    int       `db:"summaries_used"`
	VoiceSecondsUsed int       `db:"voice_seconds_used"`
	ChatMessagesUsed int       `db:"chat_messages_used"`
}

// Get returns the counters of the user's month, or domain.ErrNotFound when
// nothing has been recorded yet.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, monthStart time.Time) (*domain.UsageRecord, error) {
	sql, args, err := postgres.Builder.
		Select("user_id", "month_start", "summaries_used", "voice_seconds_used", "chat_messages_used").
		From(table).
		Where(sq.Eq{"user_id": userID, "month_start": monthStart}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build usage query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return nil, postgres.MapError(err, "usage of user", userID)
	}

	return &domain.UsageRecord{
		UserID:           rw.UserID,
		MonthStart:       rw.MonthStart,
		SummariesUsed:    rw.SummariesUsed,
		VoiceSecondsUsed: rw.VoiceSecondsUsed,
		ChatMessagesUsed: rw.ChatMessagesUsed,
	}, nil
}

// DeleteBefore removes the counters of every month that started before
// cutoff and returns how many rows were deleted.
func (r *Repo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := postgres.Builder.Delete(table).
		Where(sq.Lt{"month_start": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "usage before", cutoff)
	}
	return tag.RowsAffected(), nil
}
