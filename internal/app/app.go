package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/payment"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/usage"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/provider/openai"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/provider/whisper"
	"github.com/heartmarshall/fixnote-backend/internal/auth"
	"github.com/heartmarshall/fixnote-backend/internal/config"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/provider"
	"github.com/heartmarshall/fixnote-backend/internal/service/assistant"
	"github.com/heartmarshall/fixnote-backend/internal/service/ledger"
	"github.com/heartmarshall/fixnote-backend/internal/service/notes"
	"github.com/heartmarshall/fixnote-backend/internal/service/retrieval"
	"github.com/heartmarshall/fixnote-backend/internal/transport/middleware"
	"github.com/heartmarshall/fixnote-backend/internal/transport/rest"
	"github.com/heartmarshall/fixnote-backend/internal/transport/telegram"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires the services and serves the HTTP API and the bot
// until ctx is cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("chat_provider", cfg.Chat.Provider),
		slog.Bool("bot_enabled", cfg.Telegram.Enabled),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories.
	txm := postgres.NewTxManager(pool)
	noteRepo := note.New(pool)
	userRepo := user.New(pool)
	usageRepo := usage.New(pool)
	paymentRepo := payment.New(pool)

	// Providers.
	embedder := openai.NewEmbedder(cfg.Embedding, logger)
	chat := newChatCompleter(cfg.Chat, logger)
	stt := whisper.NewProvider(cfg.Whisper.URL, cfg.Whisper.Language, cfg.Whisper.Timeout, logger)

	// Services.
	ledgerSvc := ledger.NewService(logger, userRepo, usageRepo, paymentRepo, txm,
		domain.DefaultPlanLimits(), cfg.Subscription.TrialDuration())
	retrievalSvc := retrieval.NewService(logger, embedder, noteRepo, retrieval.Config{
		MaxInputChars:    cfg.Embedding.MaxInputChars,
		DefaultLimit:     cfg.Retrieval.DefaultLimit,
		MaxLimit:         cfg.Retrieval.MaxLimit,
		MinSimilarity:    cfg.Retrieval.MinSimilarity,
		ContextNoteChars: cfg.Retrieval.ContextNoteChars,
	})
	assistantSvc := assistant.NewService(logger, ledgerSvc, retrievalSvc, chat, assistant.Config{
		ContextLimit:  cfg.Retrieval.DefaultLimit,
		MinSimilarity: cfg.Retrieval.MinSimilarity,
	})
	notesSvc := notes.NewService(logger, noteRepo, userRepo, retrievalSvc, ledgerSvc, stt, assistantSvc)

	statusChecks := []telegram.StatusCheck{
		{Label: "🎙 Whisper (транскрипция)", Check: stt.HealthCheck},
		{Label: "🤖 Chat (саммари и ответы)", Check: assistantSvc.HealthCheck},
		{Label: "🔍 Embeddings (поиск)", Check: retrievalSvc.HealthCheck},
	}

	// Bot. An untyped nil gateway keeps the API's "bot not running" check
	// working.
	var (
		bot     *telegram.Bot
		gateway rest.BotGateway
	)
	if cfg.Telegram.Enabled {
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			return fmt.Errorf("connect to bot api: %w", err)
		}
		api.Debug = cfg.Telegram.Debug

		username := cfg.Telegram.BotUsername
		if username == "" {
			username = api.Self.UserName
		}

		bot = telegram.New(api, notesSvc, assistantSvc, ledgerSvc, telegram.Options{
			AllowUser:       cfg.Telegram.IsUserAllowed,
			WebAppURL:       cfg.Telegram.WebAppURL,
			BotUsername:     username,
			PollTimeout:     cfg.Telegram.PollTimeout,
			ForwardDebounce: cfg.Telegram.ForwardDebounce,
			MaxVoiceBytes:   cfg.Telegram.MaxVoiceBytes,
			Currency:        cfg.Subscription.Currency,
			StatusChecks:    statusChecks,
		}, logger)
		gateway = bot
	}

	// HTTP.
	initData := auth.NewInitDataValidator(cfg.Telegram.BotToken, cfg.Auth.InitDataMaxAge)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Health: rest.NewHealthHandler(pool, map[string]rest.HealthCheck{
			"whisper":    stt.HealthCheck,
			"chat":       assistantSvc.HealthCheck,
			"embeddings": retrievalSvc.HealthCheck,
		}, Version),
		Notes:   rest.NewNoteHandler(notesSvc, assistantSvc, cfg.Server.PublicURL, logger),
		Account: rest.NewAccountHandler(initData, notesSvc, jwtManager, ledgerSvc, gateway, logger),
		Auth: middleware.Chain(
			middleware.Auth(logger, initData, notesSvc, jwtManager),
			middleware.AllowList(cfg.Telegram.IsUserAllowed),
		),
		AuthLimit: limiter.Limit("auth", cfg.RateLimit.AuthPerMinute),
		APILimit:  limiter.Limit("api", cfg.RateLimit.APIPerMinute),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if bot != nil {
		g.Go(func() error {
			return bot.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}

// chatCompleter is the completion backend shared by summaries and answers.
type chatCompleter interface {
	Complete(ctx context.Context, req provider.ChatRequest) (string, error)
	HealthCheck(ctx context.Context) bool
}

// newChatCompleter picks the chat backend. DeepSeek speaks the OpenAI
// protocol, so both share one client.
func newChatCompleter(cfg config.ChatConfig, logger *slog.Logger) chatCompleter {
	if cfg.Provider == config.ChatProviderAnthropic {
		return anthropic.NewChatCompleter(cfg, logger)
	}
	return openai.NewChatCompleter(cfg, logger)
}
