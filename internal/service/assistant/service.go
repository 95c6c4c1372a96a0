// Package assistant answers questions over a user's notes and writes note
// summaries with a chat-completion model.
package assistant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/provider"
	"github.com/heartmarshall/fixnote-backend/internal/service/retrieval"
)

type ledger interface {
	CanUseFeature(ctx context.Context, userID uuid.UUID, feature domain.Feature) domain.FeatureDecision
	IncrementUsage(ctx context.Context, userID uuid.UUID, usageType domain.UsageType, amount int) bool
}

type retriever interface {
	Search(ctx context.Context, query string, userID uuid.UUID, limit int) []domain.SearchResult
	SearchWithThreshold(ctx context.Context, query string, userID uuid.UUID, limit int, minSimilarity float64) []domain.SearchResult
	BuildContext(results []domain.SearchResult) []retrieval.ContextNote
}

type chatCompleter interface {
	Complete(ctx context.Context, req provider.ChatRequest) (string, error)
	HealthCheck(ctx context.Context) bool
}

// Config tunes question answering.
type Config struct {
	ContextLimit  int
	MinSimilarity float64
}

// DefaultConfig returns the settings the bot uses.
func DefaultConfig() Config {
	return Config{ContextLimit: 5, MinSimilarity: 0.2}
}

// Service implements question answering and summarization.
type Service struct {
	log       *slog.Logger
	ledger    ledger
	retriever retriever
	chat      chatCompleter
	cfg       Config
}

// NewService creates a new assistant service.
func NewService(logger *slog.Logger, ledger ledger, retriever retriever, chat chatCompleter, cfg Config) *Service {
	return &Service{
		log:       logger.With("service", "assistant"),
		ledger:    ledger,
		retriever: retriever,
		chat:      chat,
		cfg:       cfg,
	}
}

// HealthCheck reports whether the chat provider answers.
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.chat.HealthCheck(ctx)
}
