package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openaisdk "github.com/openai/openai-go"

	"github.com/heartmarshall/fixnote-backend/internal/config"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/provider"
)

// ChatCompleter runs chat completions against an OpenAI-compatible API.
type ChatCompleter struct {
	client  openaisdk.Client
	name    string
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// NewChatCompleter creates a ChatCompleter from cfg. cfg.Provider only
// labels logs and errors; the wire protocol is the same for every
// OpenAI-compatible vendor.
func NewChatCompleter(cfg config.ChatConfig, logger *slog.Logger) *ChatCompleter {
	return &ChatCompleter{
		client:  openaisdk.NewClient(clientOptions(cfg.APIKey, cfg.BaseURL)...),
		name:    cfg.Provider,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     logger.With("adapter", cfg.Provider+"_chat"),
	}
}

// Complete returns the assistant reply to req.
func (c *ChatCompleter) Complete(ctx context.Context, req provider.ChatRequest) (string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openaisdk.SystemMessage(req.System))
	}
	messages = append(messages, openaisdk.UserMessage(req.User))

	params := openaisdk.ChatCompletionNewParams{
		Model:       openaisdk.ChatModel(c.model),
		Messages:    messages,
		Temperature: openaisdk.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.log.ErrorContext(ctx, "chat completion failed", slog.String("error", err.Error()))
		return "", domain.NewProviderError(c.name, fmt.Errorf("chat completion: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", domain.NewProviderError(c.name, errors.New("chat completion: no choices"))
	}

	c.log.DebugContext(ctx, "chat completion done",
		slog.Int64("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// HealthCheck reports whether a minimal completion succeeds.
func (c *ChatCompleter) HealthCheck(ctx context.Context) bool {
	_, err := c.Complete(ctx, provider.ChatRequest{User: "Hi", MaxTokens: 5})
	return err == nil
}
