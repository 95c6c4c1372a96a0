// Package payment stores confirmed subscription payments.
package payment

import (
	"context"
	"fmt"

	postgres "github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// Repo provides payment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new payment repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create records a payment. A charge id that was already recorded returns
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p domain.Payment) error {
	sql, args, err := postgres.Builder.Insert("payments").
		Columns("id", "charge_id", "user_id", "plan", "billing_period", "amount", "currency", "created_at").
		Values(p.ID, p.ChargeID, p.UserID, string(p.Plan), string(p.Period), p.Amount, p.Currency, p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build payment insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "payment", p.ChargeID)
	}
	return nil
}
