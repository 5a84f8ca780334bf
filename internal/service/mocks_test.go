package service

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/mock"
)

// MockAIClient is a testify mock for the AI collaborator boundary.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}
