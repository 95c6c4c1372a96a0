// Package whisper transcribes voice messages through a whisper-asr-webservice
// compatible HTTP endpoint.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

const providerName = "whisper"

// Provider calls the ASR service.
type Provider struct {
	baseURL    string
	language   string
	httpClient *http.Client
	log        *slog.Logger
	retryDelay time.Duration
}

// NewProvider creates a Provider for the ASR service at baseURL.
func NewProvider(baseURL, language string, timeout time.Duration, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", providerName),
		retryDelay: 500 * time.Millisecond,
	}
}

// Transcribe sends the audio to the ASR service and returns the trimmed
// transcript. An empty transcript is not an error.
func (p *Provider) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	q := url.Values{}
	q.Set("language", p.language)
	q.Set("output", "txt")
	reqURL := p.baseURL + "/asr?" + q.Encode()

	p.log.DebugContext(ctx, "whisper request", slog.Int("bytes", len(audio)))

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return newUploadRequest(ctx, reqURL, audio, filename)
	})
	if err != nil {
		p.log.ErrorContext(ctx, "whisper request failed", slog.String("error", err.Error()))
		return "", domain.NewProviderError(providerName, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewProviderError(providerName, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", domain.NewProviderError(providerName, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	text := strings.TrimSpace(string(body))
	p.log.InfoContext(ctx, "transcription done", slog.Int("chars", len([]rune(text))))
	return text, nil
}

// HealthCheck reports whether the ASR service answers its root endpoint.
func (p *Provider) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// newUploadRequest builds the multipart body. It is rebuilt for every attempt
// because the body reader is consumed by the first one.
func newUploadRequest(ctx context.Context, reqURL string, audio []byte, filename string) (*http.Request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("audio_file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("write audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	req, err := build()
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "whisper retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	req, err = build()
	if err != nil {
		return nil, err
	}
	return p.httpClient.Do(req)
}
