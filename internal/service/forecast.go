package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/pkg/model"
)

// AIClient is the boundary to the external text-generation collaborator.
type AIClient interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error)
}

// ForecastVariant selects which projection formula backs a forecast request.
type ForecastVariant string

const (
	// VariantDecay is the primary forecast: AI-backed with a linear-decay
	// fallback.
	VariantDecay ForecastVariant = "decay"
	// VariantRecovery is the wellness screen's local projection; it never
	// calls the collaborator.
	VariantRecovery ForecastVariant = "recovery"
)

// ForecastService produces short (energy, stress) projections for the next
// few hours.
type ForecastService struct {
	ai     AIClient
	logger *zap.Logger
}

// NewForecastService creates a new ForecastService
func NewForecastService(ai AIClient, logger *zap.Logger) *ForecastService {
	return &ForecastService{
		ai:     ai,
		logger: logger,
	}
}

// Forecast returns the projection for the requested variant. The decay
// variant asks the collaborator first and falls back to the deterministic
// formula on any failure; a best-effort enhancement with a deterministic
// floor. The result always has exactly four points.
func (s *ForecastService) Forecast(ctx context.Context, state model.HealthState, variant ForecastVariant) []model.ForecastPoint {
	if variant == VariantRecovery {
		return RecoveryForecast(state)
	}

	points, err := s.forecastFromAI(ctx, state)
	if err != nil {
		s.logger.Warn("AI forecast unavailable, using linear decay fallback", zap.Error(err))
		return DecayForecast(state)
	}
	return points
}

// forecastFromAI asks the collaborator for a strict JSON projection.
func (s *ForecastService) forecastFromAI(ctx context.Context, state model.HealthState) ([]model.ForecastPoint, error) {
	prompt := fmt.Sprintf(`Based on the current health data (Heart Rate: %.0f, Stress: %.0f, Hydration: %.0f),
predict the user's "Energy Level" (0-100) and "Stress Level" (0-100) for the next 4 hours in 1-hour increments.

Assume:
- If hydration is low (<50), energy drops fast.
- If stress is high (>70), energy drops fast.

Return ONLY a JSON array of 4 objects: [{ "time": "+1h", "energy": 80, "stress": 20 }, ...].
Do not include markdown formatting.`,
		state.HeartRate.Value, state.StressLevel.Value, state.Hydration.Value)

	response, err := s.ai.Complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
	if err != nil {
		return nil, err
	}

	points, err := parseForecastResponse(response)
	if err != nil {
		return nil, err
	}
	return points, nil
}

// parseForecastResponse strips any markdown code fences the model wrapped
// around the JSON and parses the projection.
func parseForecastResponse(response string) ([]model.ForecastPoint, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var points []model.ForecastPoint
	if err := json.Unmarshal([]byte(response), &points); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}
	if len(points) != 4 {
		return nil, fmt.Errorf("expected 4 forecast points, got %d", len(points))
	}
	return points, nil
}

// DecayForecast is the deterministic fallback projection: energy decays
// linearly and stress creeps up over the next four hours. Values are clamped
// to [0,100] for physical plausibility.
func DecayForecast(state model.HealthState) []model.ForecastPoint {
	energy := float64(state.EnergyLevel)
	stress := state.StressLevel.Value

	return []model.ForecastPoint{
		{Time: "+1h", Energy: clampPercent(energy - 5), Stress: clampPercent(stress + 2)},
		{Time: "+2h", Energy: clampPercent(energy - 15), Stress: clampPercent(stress + 5)},
		{Time: "+3h", Energy: clampPercent(energy - 25), Stress: clampPercent(stress + 10)},
		{Time: "+4h", Energy: clampPercent(energy - 40), Stress: clampPercent(stress + 15)},
	}
}

// RecoveryForecast is the wellness screen's projection: a recovery curve
// seeded at the current state, with stress floored at 10.
func RecoveryForecast(state model.HealthState) []model.ForecastPoint {
	energy := float64(state.EnergyLevel)
	stress := state.StressLevel.Value

	hydrationBoost := -5.0
	if state.Hydration.Value > 50 {
		hydrationBoost = 5
	}

	return []model.ForecastPoint{
		{Time: "Now", Energy: clampPercent(energy), Stress: clampPercent(stress)},
		{Time: "+1h", Energy: clampPercent(energy + hydrationBoost), Stress: clampPercent(max(10, stress-5))},
		{Time: "+2h", Energy: clampPercent(energy + 10), Stress: clampPercent(max(10, stress-15))},
		{Time: "+3h", Energy: clampPercent(energy - 5), Stress: clampPercent(max(10, stress+5))},
	}
}

func clampPercent(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
