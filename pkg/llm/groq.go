package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/johnquangdev/note-cleaner/pkg/config"
	"github.com/johnquangdev/note-cleaner/pkg/reqcontext"
)

// GroqProvider calls the Groq cloud API through its OpenAI-compatible
// chat completions endpoint.
type GroqProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// NewGroqProvider creates a Groq provider from config
func NewGroqProvider(cfg config.GroqConfig, logger *zap.Logger) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/openai/v1"

	return &GroqProvider{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// Name returns the provider name used in responses and logs
func (p *GroqProvider) Name() string {
	return "groq"
}

// Generate sends a system prompt and user message and returns the raw
// model output. Policy refusals come back as *RefusalError, everything
// else that prevents a usable completion as *CallError.
func (p *GroqProvider) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			p.logger.Warn("⚠️ Groq API error",
				zap.Int("status", apiErr.HTTPStatusCode),
				zap.String("type", apiErr.Type))
			return "", &CallError{Message: fmt.Sprintf("groq API error (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)}
		}
		return "", &CallError{Message: fmt.Sprintf("groq request failed: %v", err)}
	}

	if len(resp.Choices) == 0 {
		return "", &CallError{Message: "groq returned no choices"}
	}

	choice := resp.Choices[0]
	switch choice.FinishReason {
	case openai.FinishReasonLength:
		return "", &CallError{Message: "groq response truncated by token limit"}
	case openai.FinishReasonContentFilter:
		return "", &RefusalError{Message: "The model declined to process this transcript."}
	}

	p.logger.Debug("Groq completion received",
		zap.String("model", resp.Model),
		zap.Int("repair_attempt", reqcontext.GetRepairAttempt(ctx)),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens))

	return choice.Message.Content, nil
}
