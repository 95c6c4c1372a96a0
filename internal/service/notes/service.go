// Package notes owns the note lifecycle: capture from voice or text,
// editing, sharing and the per-user views built on top of it.
package notes

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

type noteRepo interface {
	Create(ctx context.Context, n domain.Note) (*domain.Note, error)
	GetByID(ctx context.Context, userID, noteID uuid.UUID) (*domain.Note, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Note, int, error)
	Update(ctx context.Context, userID, noteID uuid.UUID, upd domain.NoteUpdate) (*domain.Note, error)
	Delete(ctx context.Context, userID, noteID uuid.UUID) error
	SetShare(ctx context.Context, userID, noteID uuid.UUID, token string, isPublic bool) error
	RevokeShare(ctx context.Context, userID, noteID uuid.UUID) error
	GetByShareToken(ctx context.Context, token string) (*domain.SharedNote, error)
	SearchFullText(ctx context.Context, userID uuid.UUID, query string, limit int) ([]domain.FTSResult, error)
	Stats(ctx context.Context, userID uuid.UUID, now time.Time) (domain.NoteStats, error)
}

type userRepo interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, username, firstName *string) (*domain.User, error)
	UpdateLanguage(ctx context.Context, id uuid.UUID, lang string) error
}

type indexer interface {
	IndexNote(ctx context.Context, noteID uuid.UUID, text string) bool
}

type ledger interface {
	StartTrial(u *domain.User)
	CanUseFeature(ctx context.Context, userID uuid.UUID, feature domain.Feature) domain.FeatureDecision
	IncrementUsage(ctx context.Context, userID uuid.UUID, usageType domain.UsageType, amount int) bool
}

type transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type summarizer interface {
	Summarize(ctx context.Context, text string) (string, bool)
}

// Service implements note operations for the bot and the mini app.
type Service struct {
	log         *slog.Logger
	notes       noteRepo
	users       userRepo
	index       indexer
	ledger      ledger
	transcriber transcriber
	summarizer  summarizer
	now         func() time.Time
}

// NewService creates a new notes service.
func NewService(
	logger *slog.Logger,
	notes noteRepo,
	users userRepo,
	index indexer,
	ledger ledger,
	transcriber transcriber,
	summarizer summarizer,
) *Service {
	return &Service{
		log:         logger.With("service", "notes"),
		notes:       notes,
		users:       users,
		index:       index,
		ledger:      ledger,
		transcriber: transcriber,
		summarizer:  summarizer,
		now:         time.Now,
	}
}
