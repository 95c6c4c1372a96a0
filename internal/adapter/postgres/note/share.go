package note

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// SetShare stores the share token and visibility of a note.
func (r *Repo) SetShare(ctx context.Context, userID, noteID uuid.UUID, token string, isPublic bool) error {
	query := postgres.Builder.Update(table).
		Set("share_token", token).
		Set("is_public", isPublic).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": noteID, "user_id": userID})

	return r.execOne(ctx, query, noteID)
}

// RevokeShare clears the share token and makes the note private.
func (r *Repo) RevokeShare(ctx context.Context, userID, noteID uuid.UUID) error {
	query := postgres.Builder.Update(table).
		Set("share_token", nil).
		Set("is_public", false).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": noteID, "user_id": userID})

	return r.execOne(ctx, query, noteID)
}

type sharedRow struct {
	row
	OwnerTelegramID int64 `db:"owner_telegram_id"`
}

// GetByShareToken resolves a note by its share token regardless of owner.
// Visibility rules are applied by the caller.
func (r *Repo) GetByShareToken(ctx context.Context, token string) (*domain.SharedNote, error) {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = "n." + c
	}

	sql, args, err := postgres.Builder.Select(cols...).
		Column("u.telegram_id AS owner_telegram_id").
		From(table + " n").
		Join("users u ON u.id = n.user_id").
		Where(sq.Eq{"n.share_token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build shared note query: %w", err)
	}

	var rw sharedRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return nil, postgres.MapError(err, "shared note", "token")
	}

	return &domain.SharedNote{
		Note:            rw.toDomain(),
		OwnerTelegramID: rw.OwnerTelegramID,
	}, nil
}
