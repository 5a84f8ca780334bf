package ai

import (
	"context"
	"testing"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestComplete_MissingCredential(t *testing.T) {
	client := NewClient("", "gpt-4o-mini", time.Second, zap.NewNop())

	_, err := client.Complete(context.Background(), []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage("hello"),
	})

	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestNewClient_WithKey(t *testing.T) {
	client := NewClient("sk-test", "gpt-4o-mini", time.Second, zap.NewNop())
	assert.NotNil(t, client.client)
}
