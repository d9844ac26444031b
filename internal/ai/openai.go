package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"docsummary/internal/config"
)

// OpenAICompleter implements Completer against any OpenAI-compatible chat
// completions endpoint (configurable base URL and model).
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter builds the completion client. The underlying HTTP client
// carries a generous timeout since model calls can take many seconds, and an
// otelhttp transport so outbound calls show up in traces.
func NewOpenAICompleter(cfg config.AIConfig) (*OpenAICompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai api key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ai model is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout:   120 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

var _ Completer = (*OpenAICompleter)(nil)

// Complete performs one chat completion round trip and returns the first
// choice's content.
func (c *OpenAICompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
