// Package note implements the Note repository and vector store using
// PostgreSQL with pgvector.
package note

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	postgres "github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

const table = "notes"

var columns = []string{
	"id", "user_id", "content", "summary", "source", "duration_seconds",
	"embedding", "share_token", "is_public", "created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides note persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new note repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a note. The embedding is attached later via SetEmbedding.
func (r *Repo) Create(ctx context.Context, n domain.Note) (*domain.Note, error) {
	query := postgres.Builder.Insert(table).
		Columns("id", "user_id", "content", "summary", "source", "duration_seconds", "created_at", "updated_at").
		Values(n.ID, n.UserID, n.Content, n.Summary, string(n.Source), n.DurationSeconds, n.CreatedAt, n.UpdatedAt).
		Suffix(returning)

	return r.getOne(ctx, query, n.ID)
}

// GetByID returns a note owned by userID. A note of another user is reported
// as not found.
func (r *Repo) GetByID(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error) {
	query := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"id": noteID, "user_id": userID})

	return r.getOne(ctx, query, noteID)
}

// List returns a page of the user's notes, newest first, and the total count.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Note, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	countSQL, countArgs, err := postgres.Builder.Select("count(*)").From(table).
		Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "notes of user", userID)
	}

	sql, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, 0, postgres.MapError(err, "notes of user", userID)
	}

	notes := make([]domain.Note, len(rows))
	for i, rw := range rows {
		notes[i] = rw.toDomain()
	}
	return notes, total, nil
}

// Update applies the non-nil fields of upd. A content change drops the
// stored embedding since it no longer describes the note.
func (r *Repo) Update(ctx context.Context, userID, noteID uuid.UUID, upd domain.NoteUpdate) (*domain.Note, error) {
	query := postgres.Builder.Update(table).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": noteID, "user_id": userID}).
		Suffix(returning)

	if upd.Content != nil {
		query = query.Set("content", *upd.Content).Set("embedding", nil)
	}
	if upd.Summary != nil {
		query = query.Set("summary", *upd.Summary)
	}

	return r.getOne(ctx, query, noteID)
}

// Delete removes a note owned by userID.
func (r *Repo) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	query := postgres.Builder.Delete(table).Where(sq.Eq{"id": noteID, "user_id": userID})
	return r.execOne(ctx, query, noteID)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type row struct {
	ID              uuid.UUID        `db:"id"`
	UserID          uuid.UUID        `db:"user_id"`
	Content         string           `db:"content"`
	Summary         *string          `db:"summary"`
	Source          string           `db:"source"`
	DurationSeconds *int             `db:"duration_seconds"`
	Embedding       *pgvector.Vector `db:"embedding"`
	ShareToken      *string          `db:"share_token"`
	IsPublic        bool             `db:"is_public"`
	CreatedAt       time.Time        `db:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at"`
}

func (rw row) toDomain() domain.Note {
	n := domain.Note{
		ID:              rw.ID,
		UserID:          rw.UserID,
		Content:         rw.Content,
		Summary:         rw.Summary,
		Source:          domain.NoteSource(rw.Source),
		DurationSeconds: rw.DurationSeconds,
		ShareToken:      rw.ShareToken,
		IsPublic:        rw.IsPublic,
		CreatedAt:       rw.CreatedAt,
		UpdatedAt:       rw.UpdatedAt,
	}
	if rw.Embedding != nil {
		n.Embedding = rw.Embedding.Slice()
	}
	return n
}

func (r *Repo) getOne(ctx context.Context, query sq.Sqlizer, key any) (*domain.Note, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build note query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return nil, postgres.MapError(err, "note", key)
	}

	n := rw.toDomain()
	return &n, nil
}

func (r *Repo) execOne(ctx context.Context, query sq.Sqlizer, key any) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build note query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "note", key)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "note", key)
	}
	return nil
}
