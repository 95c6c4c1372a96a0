package config

import (
	"slices"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Embedding    EmbeddingConfig    `yaml:"embedding"`
	Chat         ChatConfig         `yaml:"chat"`
	Whisper      WhisperConfig      `yaml:"whisper"`
	Retrieval    RetrievalConfig    `yaml:"retrieval"`
	Subscription SubscriptionConfig `yaml:"subscription"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Telegram-Init-Data"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// PublicURL is the externally visible base URL used in share links.
	PublicURL string `yaml:"public_url" env:"SERVER_PUBLIC_URL" env-default:"http://localhost:8080"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds mini app session settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"fixnote"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
	// InitDataMaxAge bounds the age of a Telegram WebApp init-data payload.
	// Zero disables the check.
	InitDataMaxAge time.Duration `yaml:"init_data_max_age" env:"AUTH_INIT_DATA_MAX_AGE" env-default:"24h"`
}

// TelegramConfig holds bot settings.
type TelegramConfig struct {
	BotToken          string        `yaml:"bot_token"           env:"TELEGRAM_BOT_TOKEN"           env-required:"true"`
	Enabled           bool          `yaml:"enabled"             env:"TELEGRAM_ENABLED"             env-default:"true"`
	AllowedUserIDsRaw string        `yaml:"allowed_user_ids"    env:"TELEGRAM_ALLOWED_USER_IDS"`
	WebAppURL         string        `yaml:"webapp_url"          env:"TELEGRAM_WEBAPP_URL"`
	BotUsername       string        `yaml:"bot_username"        env:"TELEGRAM_BOT_USERNAME"`
	PollTimeout       int           `yaml:"poll_timeout"        env:"TELEGRAM_POLL_TIMEOUT"        env-default:"30"`
	ForwardDebounce   time.Duration `yaml:"forward_debounce"    env:"TELEGRAM_FORWARD_DEBOUNCE"    env-default:"500ms"`
	MaxVoiceBytes     int64         `yaml:"max_voice_bytes"     env:"TELEGRAM_MAX_VOICE_BYTES"     env-default:"20971520"`
	Debug             bool          `yaml:"debug"               env:"TELEGRAM_DEBUG"               env-default:"false"`

	// AllowedUserIDs is parsed from AllowedUserIDsRaw during validation.
	// Empty means every user is allowed.
	AllowedUserIDs []int64 `yaml:"-" env:"-"`
}

// IsUserAllowed reports whether the chat-platform user may use the bot.
func (c TelegramConfig) IsUserAllowed(id int64) bool {
	return len(c.AllowedUserIDs) == 0 || slices.Contains(c.AllowedUserIDs, id)
}

// EmbeddingConfig holds the embeddings provider settings.
type EmbeddingConfig struct {
	APIKey        string        `yaml:"api_key"         env:"OPENAI_API_KEY"          env-required:"true"`
	BaseURL       string        `yaml:"base_url"        env:"OPENAI_BASE_URL"`
	Model         string        `yaml:"model"           env:"EMBEDDING_MODEL"         env-default:"text-embedding-3-small"`
	Dimensions    int           `yaml:"dimensions"      env:"EMBEDDING_DIMENSIONS"    env-default:"1536"`
	MaxInputChars int           `yaml:"max_input_chars" env:"EMBEDDING_MAX_INPUT_CHARS" env-default:"30000"`
	Timeout       time.Duration `yaml:"timeout"         env:"EMBEDDING_TIMEOUT"       env-default:"30s"`
}

// Chat providers.
const (
	ChatProviderDeepSeek  = "deepseek"
	ChatProviderOpenAI    = "openai"
	ChatProviderAnthropic = "anthropic"
)

// ChatConfig holds the chat-completion provider settings used for
// summaries and question answering.
type ChatConfig struct {
	Provider string        `yaml:"provider" env:"CHAT_PROVIDER" env-default:"deepseek"`
	APIKey   string        `yaml:"api_key"  env:"CHAT_API_KEY"  env-required:"true"`
	BaseURL  string        `yaml:"base_url" env:"CHAT_BASE_URL" env-default:"https://api.deepseek.com"`
	Model    string        `yaml:"model"    env:"CHAT_MODEL"    env-default:"deepseek-chat"`
	Timeout  time.Duration `yaml:"timeout"  env:"CHAT_TIMEOUT"  env-default:"60s"`
}

// WhisperConfig holds the speech-to-text service settings.
type WhisperConfig struct {
	URL      string        `yaml:"url"      env:"WHISPER_URL"      env-default:"http://localhost:9000"`
	Language string        `yaml:"language" env:"WHISPER_LANGUAGE" env-default:"ru"`
	Timeout  time.Duration `yaml:"timeout"  env:"WHISPER_TIMEOUT"  env-default:"120s"`
}

// RetrievalConfig holds semantic search parameters.
type RetrievalConfig struct {
	DefaultLimit     int     `yaml:"default_limit"      env:"RETRIEVAL_DEFAULT_LIMIT"      env-default:"5"`
	MaxLimit         int     `yaml:"max_limit"          env:"RETRIEVAL_MAX_LIMIT"          env-default:"20"`
	MinSimilarity    float64 `yaml:"min_similarity"     env:"RETRIEVAL_MIN_SIMILARITY"     env-default:"0.2"`
	ContextNoteChars int     `yaml:"context_note_chars" env:"RETRIEVAL_CONTEXT_NOTE_CHARS" env-default:"500"`
}

// SubscriptionConfig holds plan lifecycle settings.
type SubscriptionConfig struct {
	TrialDays int    `yaml:"trial_days" env:"SUBSCRIPTION_TRIAL_DAYS" env-default:"7"`
	Currency  string `yaml:"currency"   env:"SUBSCRIPTION_CURRENCY"   env-default:"XTR"`
}

// TrialDuration returns the trial length of a new user.
func (c SubscriptionConfig) TrialDuration() time.Duration {
	return time.Duration(c.TrialDays) * 24 * time.Hour
}

// RateLimitConfig holds per-IP rate limits of the HTTP API.
type RateLimitConfig struct {
	APIPerMinute    int           `yaml:"api_per_minute"   env:"RATE_LIMIT_API_PER_MINUTE" env-default:"120"`
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATE_LIMIT_AUTH_PER_MINUTE" env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP"        env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
