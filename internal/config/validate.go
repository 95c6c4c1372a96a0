package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	ids, err := ParseUserIDs(c.Telegram.AllowedUserIDsRaw)
	if err != nil {
		return fmt.Errorf("telegram.allowed_user_ids: %w", err)
	}
	c.Telegram.AllowedUserIDs = ids

	if c.Telegram.ForwardDebounce <= 0 {
		return fmt.Errorf("telegram.forward_debounce must be > 0 (got %v)", c.Telegram.ForwardDebounce)
	}

	switch c.Chat.Provider {
	case ChatProviderDeepSeek, ChatProviderOpenAI, ChatProviderAnthropic:
	default:
		return fmt.Errorf("chat.provider must be one of deepseek, openai, anthropic (got %q)", c.Chat.Provider)
	}

	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions must be > 0 (got %d)", c.Embedding.Dimensions)
	}
	if c.Embedding.MaxInputChars <= 0 {
		return fmt.Errorf("embedding.max_input_chars must be > 0 (got %d)", c.Embedding.MaxInputChars)
	}

	if err := c.Retrieval.validate(); err != nil {
		return fmt.Errorf("retrieval: %w", err)
	}

	if c.Subscription.TrialDays < 0 {
		return fmt.Errorf("subscription.trial_days must be >= 0 (got %d)", c.Subscription.TrialDays)
	}

	return nil
}

func (r *RetrievalConfig) validate() error {
	if r.MaxLimit < 1 {
		return fmt.Errorf("max_limit must be >= 1 (got %d)", r.MaxLimit)
	}
	if r.DefaultLimit < 1 || r.DefaultLimit > r.MaxLimit {
		return fmt.Errorf("default_limit must be in [1, %d] (got %d)", r.MaxLimit, r.DefaultLimit)
	}
	if r.MinSimilarity < 0 || r.MinSimilarity > 1 {
		return fmt.Errorf("min_similarity must be in [0, 1] (got %v)", r.MinSimilarity)
	}
	if r.ContextNoteChars <= 0 {
		return fmt.Errorf("context_note_chars must be > 0 (got %d)", r.ContextNoteChars)
	}
	return nil
}

// ParseUserIDs parses a comma-separated list of chat-platform user ids.
// An empty string returns a nil slice.
func ParseUserIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
