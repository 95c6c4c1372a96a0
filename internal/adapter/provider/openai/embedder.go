// Package openai adapts the OpenAI API (and OpenAI-compatible vendors such as
// DeepSeek) for embeddings and chat completions.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/heartmarshall/fixnote-backend/internal/config"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// Embedder turns text into embedding vectors.
type Embedder struct {
	client  openaisdk.Client
	model   string
	dims    int
	timeout time.Duration
	log     *slog.Logger
}

// NewEmbedder creates an Embedder from cfg.
func NewEmbedder(cfg config.EmbeddingConfig, logger *slog.Logger) *Embedder {
	return &Embedder{
		client:  openaisdk.NewClient(clientOptions(cfg.APIKey, cfg.BaseURL)...),
		model:   cfg.Model,
		dims:    cfg.Dimensions,
		timeout: cfg.Timeout,
		log:     logger.With("adapter", "openai_embeddings"),
	}
}

// Dims returns the vector dimension produced by Embed.
func (e *Embedder) Dims() int { return e.dims }

// Embed returns the embedding of text. The caller is responsible for
// keeping text within the model's input limit.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := withTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Input:      openaisdk.EmbeddingNewParamsInputUnion{OfString: openaisdk.String(text)},
		Model:      openaisdk.EmbeddingModel(e.model),
		Dimensions: openaisdk.Int(int64(e.dims)),
	})
	if err != nil {
		e.log.ErrorContext(ctx, "embedding request failed", slog.String("error", err.Error()))
		return nil, domain.NewProviderError("openai", fmt.Errorf("embeddings: %w", err))
	}

	if len(resp.Data) == 0 {
		return nil, domain.NewProviderError("openai", errors.New("embeddings: empty response"))
	}

	raw := resp.Data[0].Embedding
	if len(raw) != e.dims {
		return nil, domain.NewProviderError("openai",
			fmt.Errorf("embeddings: got %d dimensions, want %d", len(raw), e.dims))
	}

	vec := make([]float32, len(raw))
	for i, v := range raw {
		vec[i] = float32(v)
	}

	e.log.DebugContext(ctx, "embedding created", slog.Int("chars", len([]rune(text))))
	return vec, nil
}

// HealthCheck reports whether a trivial embedding succeeds.
func (e *Embedder) HealthCheck(ctx context.Context) bool {
	_, err := e.Embed(ctx, "test")
	return err == nil
}

func clientOptions(apiKey, baseURL string) []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(1),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return opts
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
