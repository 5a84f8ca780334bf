package service

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/pkg/model"
)

// Fallback copy shown whenever the collaborator is unreachable. Failures are
// degraded-but-non-blocking: the caller never sees an error state.
const (
	InsightFallback = "Monitoring active. Connection to AI limited."
	ChatFallback    = "I'm having trouble connecting to the cloud. Please try again."
)

// chatHistoryWindow is the number of prior turns forwarded with each chat
// request.
const chatHistoryWindow = 6

// InsightService produces short coaching observations and chat replies from
// the text-generation collaborator.
type InsightService struct {
	ai     AIClient
	logger *zap.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(ai AIClient, logger *zap.Logger) *InsightService {
	return &InsightService{
		ai:     ai,
		logger: logger,
	}
}

// GenerateInsight returns a one-sentence observation plus a suggestion for
// the given vitals. Any failure yields the fixed fallback line.
func (s *InsightService) GenerateInsight(ctx context.Context, state model.HealthState) string {
	prompt := fmt.Sprintf(`Act as a compassionate medical companion (Aura).
Analyze these vitals for an elderly user:
- HR: %.0f
- BP: %.0f/%.0f
- SpO2: %.0f
- Stress: %.0f
- Hydration: %.0f

Provide a 1-sentence observation about their current state (e.g. "Your heart rate is slightly elevated," or "You are perfectly balanced.").
Then provide 1 specific suggestion.
Keep it under 30 words total.`,
		state.HeartRate.Value,
		state.BloodPressureSys.Value, state.BloodPressureDia.Value,
		state.OxygenLevel.Value,
		state.StressLevel.Value,
		state.Hydration.Value)

	response, err := s.ai.Complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
	if err != nil {
		s.logger.Warn("insight generation failed, using fallback", zap.Error(err))
		return InsightFallback
	}
	return response
}

// Chat answers a free-text question with the current vitals as context and a
// rolling window of the last turns. Any failure yields the canned apology.
func (s *InsightService) Chat(ctx context.Context, state model.HealthState, history []model.ChatMessage, message string) string {
	systemInstruction := fmt.Sprintf(`You are Aura, a predictive health simulator.
Current Vitals: HR %.0f, BP %.0f/%.0f, Hydration %.0f%%.

The user is asking questions about their health or running "what if" scenarios.
Be encouraging, calm, and use metaphors (e.g., "body battery", "engine heat").
Keep responses short and conversational.`,
		state.HeartRate.Value,
		state.BloodPressureSys.Value, state.BloodPressureDia.Value,
		state.Hydration.Value)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemInstruction),
	}

	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}
	for _, turn := range history {
		if turn.Role == model.ChatRoleModel {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	response, err := s.ai.Complete(ctx, messages)
	if err != nil {
		s.logger.Warn("chat reply failed, using fallback", zap.Error(err))
		return ChatFallback
	}
	return response
}
