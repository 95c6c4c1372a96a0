// Package anthropic adapts the Anthropic Messages API as a chat completion
// provider.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/fixnote-backend/internal/config"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/provider"
)

const defaultMaxTokens = 1024

// ChatCompleter runs single-turn completions through Claude models.
type ChatCompleter struct {
	client  anthropicsdk.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// NewChatCompleter creates a ChatCompleter from cfg. An empty BaseURL keeps
// the SDK default endpoint.
func NewChatCompleter(cfg config.ChatConfig, logger *slog.Logger) *ChatCompleter {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(1),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &ChatCompleter{
		client:  anthropicsdk.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     logger.With("adapter", "anthropic_chat"),
	}
}

// Complete returns the text of Claude's reply to req.
func (c *ChatCompleter) Complete(ctx context.Context, req provider.ChatRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropicsdk.MessageNewParams{
		Model:       anthropicsdk.Model(c.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropicsdk.Float(req.Temperature),
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropicsdk.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.log.ErrorContext(ctx, "messages request failed", slog.String("error", err.Error()))
		return "", domain.NewProviderError("anthropic", fmt.Errorf("messages: %w", err))
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", domain.NewProviderError("anthropic", errors.New("messages: empty response"))
	}

	c.log.DebugContext(ctx, "messages request done",
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return sb.String(), nil
}

// HealthCheck reports whether a minimal completion succeeds.
func (c *ChatCompleter) HealthCheck(ctx context.Context) bool {
	_, err := c.Complete(ctx, provider.ChatRequest{User: "Hi", MaxTokens: 5})
	return err == nil
}
