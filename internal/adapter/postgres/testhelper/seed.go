package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueTelegramID returns a random chat-platform id unlikely to collide
// across parallel tests.
func UniqueTelegramID() int64 {
	return rand.Int64N(1<<40) + 1_000_000
}

// SeedUser creates a user on a running trial and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return SeedUserWithPlan(t, pool, domain.PlanTrial, nil)
}

// SeedUserWithPlan creates a user with the given plan. expiresAt becomes the
// trial end for trial users and the subscription expiry for paid plans.
func SeedUserWithPlan(t *testing.T, pool *pgxpool.Pool, plan domain.Plan, expiresAt *time.Time) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	username := "user_" + suffix
	user := domain.User{
		ID:           uuid.New(),
		TelegramID:   UniqueTelegramID(),
		Username:     &username,
		LanguageCode: domain.DefaultLanguage,
		Plan:         plan,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch plan {
	case domain.PlanTrial:
		user.TrialStartedAt = &now
		user.TrialEndsAt = expiresAt
	case domain.PlanPro, domain.PlanUltra:
		user.SubscriptionStartedAt = &now
		user.SubscriptionExpiresAt = expiresAt
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, telegram_id, username, language_code, subscription_plan,
		                    trial_started_at, trial_ends_at, subscription_started_at, subscription_expires_at,
		                    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		user.ID, user.TelegramID, user.Username, user.LanguageCode, string(user.Plan),
		user.TrialStartedAt, user.TrialEndsAt, user.SubscriptionStartedAt, user.SubscriptionExpiresAt,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedNote creates a text note for userID. A non-nil embedding is stored
// with the note.
func SeedNote(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, content string, embedding []float32) domain.Note {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	note := domain.Note{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		Source:    domain.NoteSourceText,
		Embedding: embedding,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var vec *pgvector.Vector
	if embedding != nil {
		v := pgvector.NewVector(embedding)
		vec = &v
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO notes (id, user_id, content, source, embedding, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		note.ID, note.UserID, note.Content, string(note.Source), vec, note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedNote insert note: %v", err)
	}

	return note
}

// UnitVector returns a vector of the given dimension with 1 at position hot
// and 0 elsewhere. Handy for building predictable cosine similarities.
func UnitVector(dims, hot int) []float32 {
	v := make([]float32, dims)
	v[hot%dims] = 1
	return v
}
