package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// ErrMissingCredential is returned on first use when no API key was
// configured. Callers are expected to catch it and apply their local
// fallback rather than surface it.
var ErrMissingCredential = errors.New("ai: API key missing")

// Client wraps the OpenAI SDK behind the contract every Aura caller relies
// on: a single attempt per request, a bounded timeout, and an error result
// the caller converts into its own fallback value. No retries, no backoff.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates a new text-generation client. An empty API key is
// allowed; requests will fail with ErrMissingCredential instead.
func NewClient(apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	c := &Client{
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
	if apiKey != "" {
		client := openai.NewClient(option.WithAPIKey(apiKey))
		c.client = &client
	}
	return c
}

// Complete sends a single chat completion request and returns the text of
// the first choice.
func (c *Client) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	if c.client == nil {
		return "", ErrMissingCredential
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	requestStart := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messages,
	})
	if err != nil {
		c.logger.Warn("chat completion request failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(requestStart)),
		)
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	c.logger.Info("chat completion succeeded",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("request_time", time.Since(requestStart)),
	)

	return content, nil
}
