//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/note"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/payment"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/usage"
	"github.com/heartmarshall/fixnote-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/fixnote-backend/internal/provider"
	"github.com/heartmarshall/fixnote-backend/internal/auth"
	"github.com/heartmarshall/fixnote-backend/internal/config"
	"github.com/heartmarshall/fixnote-backend/internal/domain"
	"github.com/heartmarshall/fixnote-backend/internal/service/assistant"
	"github.com/heartmarshall/fixnote-backend/internal/service/ledger"
	"github.com/heartmarshall/fixnote-backend/internal/service/notes"
	"github.com/heartmarshall/fixnote-backend/internal/service/retrieval"
	"github.com/heartmarshall/fixnote-backend/internal/transport/middleware"
	"github.com/heartmarshall/fixnote-backend/internal/transport/rest"
)

const (
	testBotToken  = "123456:e2e-test-token"
	testPublicURL = "https://fixnote.test"
	embeddingDims = 1536
)

// testLogWriter routes slog output to t.Log.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// bagOfWordsEmbedder hashes every word into one dimension, so texts sharing
// words are similar and unrelated texts are orthogonal.
type bagOfWordsEmbedder struct{}

func (bagOfWordsEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, embeddingDims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:")
		if word == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%embeddingDims]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	if norm == 0 {
		return nil, fmt.Errorf("%w: empty embedding input", domain.ErrProvider)
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec, nil
}

func (bagOfWordsEmbedder) HealthCheck(context.Context) bool { return true }

// cannedChat answers every completion with the same text.
type cannedChat struct{ reply string }

func (c cannedChat) Complete(context.Context, provider.ChatRequest) (string, error) {
	return c.reply, nil
}

func (cannedChat) HealthCheck(context.Context) bool { return true }

// noSpeech fails every transcription; the REST API never takes audio.
type noSpeech struct{}

func (noSpeech) Transcribe(context.Context, []byte, string) (string, error) {
	return "", fmt.Errorf("%w: transcription disabled in tests", domain.ErrProvider)
}

type testServer struct {
	URL      string
	Client   *http.Client
	InitData *auth.InitDataValidator
}

// setupTestServer bootstraps the full HTTP stack backed by a real PostgreSQL
// container (shared via testhelper). Only the AI providers are faked.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	noteRepo := note.New(pool)
	userRepo := user.New(pool)

	ledgerSvc := ledger.NewService(logger, userRepo, usage.New(pool), payment.New(pool), txm,
		domain.DefaultPlanLimits(), 7*24*time.Hour)
	retrievalSvc := retrieval.NewService(logger, bagOfWordsEmbedder{}, noteRepo, retrieval.DefaultConfig())
	assistantSvc := assistant.NewService(logger, ledgerSvc, retrievalSvc, cannedChat{reply: "Короткое саммари."},
		assistant.Config{ContextLimit: 5, MinSimilarity: 0.2})
	notesSvc := notes.NewService(logger, noteRepo, userRepo, retrievalSvc, ledgerSvc, noSpeech{}, assistantSvc)

	initData := auth.NewInitDataValidator(testBotToken, time.Hour)
	jwtMgr := auth.NewJWTManager("e2e-secret-at-least-32-chars-long!!", "fixnote-e2e", 15*time.Minute)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	router := rest.NewRouter(rest.RouterDeps{
		Health: rest.NewHealthHandler(pool, map[string]rest.HealthCheck{
			"chat":       assistantSvc.HealthCheck,
			"embeddings": retrievalSvc.HealthCheck,
		}, "e2e"),
		Notes:     rest.NewNoteHandler(notesSvc, assistantSvc, testPublicURL, logger),
		Account:   rest.NewAccountHandler(initData, notesSvc, jwtMgr, ledgerSvc, nil, logger),
		Auth:      middleware.Auth(logger, initData, notesSvc, jwtMgr),
		AuthLimit: limiter.Limit("auth", 1000),
		APILimit:  limiter.Limit("api", 1000),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(config.CORSConfig{AllowedOrigins: "*"}),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), InitData: initData}
}

// initDataFor builds signed WebApp init data for a fresh Telegram user.
func (ts *testServer) initDataFor(t *testing.T, telegramID int64, firstName string) string {
	t.Helper()

	userJSON, err := json.Marshal(map[string]any{
		"id":            telegramID,
		"first_name":    firstName,
		"username":      "e2e_" + strconv.FormatInt(telegramID, 10),
		"language_code": "ru",
	})
	require.NoError(t, err)

	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	values.Set("query_id", "AAE2E")
	values.Set("user", string(userJSON))
	values.Set("hash", ts.InitData.Sign(values))
	return values.Encode()
}

// login exchanges init data for an access token.
func (ts *testServer) login(t *testing.T) (token string, telegramID int64) {
	t.Helper()

	telegramID = testhelper.UniqueTelegramID()
	status, body := ts.do(t, http.MethodPost, "/api/auth/telegram", "", map[string]any{
		"init_data": ts.initDataFor(t, telegramID, "Тест"),
	})
	require.Equal(t, http.StatusOK, status, "login: %v", body)

	token, ok := body["access_token"].(string)
	require.True(t, ok, "expected access_token in %v", body)
	return token, telegramID
}

// do sends a JSON request with an optional bearer token and decodes a JSON
// object response. A body-less response decodes to nil.
func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req, err := http.NewRequest(method, ts.URL+path, &body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	if resp.ContentLength != 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	}
	return resp.StatusCode, result
}

// createNote posts a text note and returns its id.
func (ts *testServer) createNote(t *testing.T, token, content string) string {
	t.Helper()

	status, body := ts.do(t, http.MethodPost, "/api/notes", token, map[string]any{"content": content})
	require.Equal(t, http.StatusCreated, status, "create note: %v", body)

	id, ok := body["id"].(string)
	require.True(t, ok, "expected note id in %v", body)
	return id
}
