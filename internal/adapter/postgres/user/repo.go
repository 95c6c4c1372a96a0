// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

const table = "users"

var columns = []string{
	"id", "telegram_id", "username", "first_name", "language_code", "subscription_plan",
	"trial_started_at", "trial_ends_at", "subscription_started_at", "subscription_expires_at",
	"created_at", "updated_at",
}

var returning = "RETURNING " + strings.Join(columns, ", ")

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": id})
	return r.getOne(ctx, query, id)
}

// GetByTelegramID returns a user by chat-platform id.
func (r *Repo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"telegram_id": telegramID})
	return r.getOne(ctx, query, telegramID)
}

// Create inserts a new user and returns the persisted domain.User.
// A duplicate telegram_id returns domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	query := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(
			u.ID, u.TelegramID, u.Username, u.FirstName, u.LanguageCode, string(u.Plan),
			u.TrialStartedAt, u.TrialEndsAt, u.SubscriptionStartedAt, u.SubscriptionExpiresAt,
			u.CreatedAt, u.UpdatedAt,
		).
		Suffix(returning)

	return r.getOne(ctx, query, u.TelegramID)
}

// UpdateProfile refreshes the display attributes of the user.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, username, firstName *string) (*domain.User, error) {
	query := postgres.Builder.Update(table).
		Set("username", username).
		Set("first_name", firstName).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning)

	return r.getOne(ctx, query, id)
}

// UpdateLanguage sets the language preference.
func (r *Repo) UpdateLanguage(ctx context.Context, id uuid.UUID, lang string) error {
	query := postgres.Builder.Update(table).
		Set("language_code", lang).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})

	return r.execOne(ctx, query, id)
}

// DowngradePlan moves the user to the free plan, but only while the stored
// plan is still from. It reports whether a row was changed, so a concurrent
// activation that already replaced from is never overwritten.
func (r *Repo) DowngradePlan(ctx context.Context, id uuid.UUID, from domain.Plan) (bool, error) {
	query := postgres.Builder.Update(table).
		Set("subscription_plan", string(domain.PlanFree)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "subscription_plan": string(from)})

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build downgrade query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "user", id)
	}
	return tag.RowsAffected() == 1, nil
}

// ActivateSubscription stores a paid plan with its period boundaries.
func (r *Repo) ActivateSubscription(ctx context.Context, id uuid.UUID, plan domain.Plan, startedAt, expiresAt time.Time) (*domain.User, error) {
	query := postgres.Builder.Update(table).
		Set("subscription_plan", string(plan)).
		Set("subscription_started_at", startedAt).
		Set("subscription_expires_at", expiresAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returning)

	return r.getOne(ctx, query, id)
}

// ListExpired returns up to limit users whose stored trial or paid plan has
// lapsed at now.
func (r *Repo) ListExpired(ctx context.Context, now time.Time, limit int) ([]domain.User, error) {
	query := postgres.Builder.Select(columns...).From(table).
		Where(sq.Or{
			sq.And{sq.Eq{"subscription_plan": string(domain.PlanTrial)}, sq.Lt{"trial_ends_at": now}},
			sq.And{
				sq.Eq{"subscription_plan": []string{string(domain.PlanPro), string(domain.PlanUltra)}},
				sq.Lt{"subscription_expires_at": now},
			},
		}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expired query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", "expired")
	}

	users := make([]domain.User, len(rows))
	for i, rw := range rows {
		users[i] = rw.toDomain()
	}
	return users, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type row struct {
	ID                    uuid.UUID  `db:"id"`
	TelegramID            int64      `db:"telegram_id"`
	Username              *string    `db:"username"`
	FirstName             *string    `db:"first_name"`
	LanguageCode          string     `db:"language_code"`
	Plan                  string     `db:"subscription_plan"`
	TrialStartedAt        *time.Time `db:"trial_started_at"`
	TrialEndsAt           *time.Time `db:"trial_ends_at"`
	SubscriptionStartedAt *time.Time `db:"subscription_started_at"`
	SubscriptionExpiresAt *time.Time `db:"subscription_expires_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

func (rw row) toDomain() domain.User {
	return domain.User{
		ID:                    rw.ID,
		TelegramID:            rw.TelegramID,
		Username:              rw.Username,
		FirstName:             rw.FirstName,
		LanguageCode:          rw.LanguageCode,
		Plan:                  domain.Plan(rw.Plan),
		TrialStartedAt:        rw.TrialStartedAt,
		TrialEndsAt:           rw.TrialEndsAt,
		SubscriptionStartedAt: rw.SubscriptionStartedAt,
		SubscriptionExpiresAt: rw.SubscriptionExpiresAt,
		CreatedAt:             rw.CreatedAt,
		UpdatedAt:             rw.UpdatedAt,
	}
}

func (r *Repo) getOne(ctx context.Context, query sq.Sqlizer, key any) (*domain.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			err = pgx.ErrNoRows
		}
		return nil, postgres.MapError(err, "user", key)
	}

	u := rw.toDomain()
	return &u, nil
}

func (r *Repo) execOne(ctx context.Context, query sq.Sqlizer, id uuid.UUID) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build user query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "user", id)
	}
	return nil
}
