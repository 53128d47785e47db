package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/note-cleaner/pkg/config"
	"github.com/johnquangdev/note-cleaner/pkg/reqcontext"
)

// OllamaProvider talks to a local Ollama server over its /api/chat
// endpoint. No API key, no cloud round-trip.
type OllamaProvider struct {
	httpClient *http.Client
	baseURL    string
	model      string
	numCtx     int
	temp       float32
	topP       float32
	skipRepair bool
	logger     *zap.Logger
}

// NewOllamaProvider creates an Ollama provider from config
func NewOllamaProvider(cfg config.OllamaConfig, logger *zap.Logger) *OllamaProvider {
	return &OllamaProvider{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		numCtx:     cfg.NumCtx,
		temp:       cfg.Temperature,
		topP:       cfg.TopP,
		skipRepair: cfg.SkipRepair,
		logger:     logger,
	}
}

// Name returns the provider name used in responses and logs
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// SkipRepair reports whether the repair round-trip should be skipped
// for this backend. Small local models rarely benefit from a second
// pass and the extra call doubles latency.
func (p *OllamaProvider) SkipRepair() bool {
	return p.skipRepair
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
	NumCtx      int     `json:"num_ctx"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error"`
}

// Reachable probes the Ollama server with a short retry window. Used
// at selection time so an unreachable local server surfaces as a clear
// error instead of a mid-request timeout.
func (p *OllamaProvider) Reachable(ctx context.Context) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("ollama health check returned status %d", resp.StatusCode)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(200*time.Millisecond),
		backoff.WithMaxInterval(1*time.Second),
	), 2), ctx)

	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("ollama server not reachable at %s: %w", p.baseURL, err)
	}
	return nil
}

// Generate sends a chat request and returns the raw model output
func (p *OllamaProvider) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	reqBody := ollamaChatRequest{
		Model: p.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Stream: false,
		Format: "json",
		Options: ollamaOptions{
			Temperature: p.temp,
			TopP:        p.topP,
			NumCtx:      p.numCtx,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", &CallError{Message: fmt.Sprintf("ollama request timed out after %s. Try a shorter transcript or a smaller model.", p.httpClient.Timeout)}
		}
		return "", &CallError{Message: fmt.Sprintf("cannot reach ollama at %s: %v", p.baseURL, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CallError{Message: fmt.Sprintf("failed to read ollama response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &CallError{Message: fmt.Sprintf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &CallError{Message: fmt.Sprintf("failed to decode ollama response: %v", err)}
	}
	if chatResp.Error != "" {
		return "", &CallError{Message: fmt.Sprintf("ollama error: %s", chatResp.Error)}
	}

	p.logger.Debug("Ollama completion received",
		zap.String("model", p.model),
		zap.Int("repair_attempt", reqcontext.GetRepairAttempt(ctx)),
		zap.Duration("elapsed", time.Since(start)))

	return chatResp.Message.Content, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
