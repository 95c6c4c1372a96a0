// Package retrieval turns notes into vectors and answers semantic queries
// over a user's notes.
package retrieval

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// embedder produces embedding vectors.
type embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	HealthCheck(ctx context.Context) bool
}

// vectorStore persists embeddings and runs nearest-neighbour search.
type vectorStore interface {
	SetEmbedding(ctx context.Context, noteID uuid.UUID, embedding []float32) error
	SearchSimilar(ctx context.Context, userID uuid.UUID, embedding []float32, limit int) ([]domain.SearchResult, error)
}

// Config holds the retrieval limits.
type Config struct {
	MaxInputChars    int
	DefaultLimit     int
	MaxLimit         int
	MinSimilarity    float64
	ContextNoteChars int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxInputChars:    30000,
		DefaultLimit:     5,
		MaxLimit:         20,
		MinSimilarity:    0.2,
		ContextNoteChars: 500,
	}
}

// Service is the retrieval engine.
type Service struct {
	log      *slog.Logger
	embedder embedder
	store    vectorStore
	cfg      Config
}

// NewService creates a new retrieval service.
func NewService(logger *slog.Logger, embedder embedder, store vectorStore, cfg Config) *Service {
	return &Service{
		log:      logger.With("service", "retrieval"),
		embedder: embedder,
		store:    store,
		cfg:      cfg,
	}
}

// MinSimilarity returns the configured default relevance threshold.
func (s *Service) MinSimilarity() float64 { return s.cfg.MinSimilarity }

// HealthCheck reports whether the embedding provider is reachable.
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.embedder.HealthCheck(ctx)
}
