package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/pkg/model"
)

func TestDecayForecast_Deterministic(t *testing.T) {
	state := baselineState()
	state.EnergyLevel = 70
	state.StressLevel.Value = 40

	points := DecayForecast(state)
	require.Len(t, points, 4)

	assert.Equal(t, model.ForecastPoint{Time: "+1h", Energy: 65, Stress: 42}, points[0])
	assert.Equal(t, model.ForecastPoint{Time: "+2h", Energy: 55, Stress: 45}, points[1])
	assert.Equal(t, model.ForecastPoint{Time: "+3h", Energy: 45, Stress: 50}, points[2])
	assert.Equal(t, model.ForecastPoint{Time: "+4h", Energy: 30, Stress: 55}, points[3])
}

func TestDecayForecast_Clamping(t *testing.T) {
	state := baselineState()
	state.EnergyLevel = 10
	state.StressLevel.Value = 95

	points := DecayForecast(state)
	require.Len(t, points, 4)

	// Energy bottoms out at 0 and stress tops out at 100 instead of leaving
	// the percentage range.
	assert.Equal(t, 0, points[2].Energy)
	assert.Equal(t, 0, points[3].Energy)
	assert.Equal(t, 100, points[1].Stress)
	assert.Equal(t, 100, points[3].Stress)
}

func TestRecoveryForecast_HydrationBranch(t *testing.T) {
	state := baselineState()
	state.EnergyLevel = 60
	state.StressLevel.Value = 40

	state.Hydration.Value = 70
	hydrated := RecoveryForecast(state)
	require.Len(t, hydrated, 4)
	assert.Equal(t, "Now", hydrated[0].Time)
	assert.Equal(t, 60, hydrated[0].Energy)
	assert.Equal(t, 65, hydrated[1].Energy)

	state.Hydration.Value = 30
	parched := RecoveryForecast(state)
	assert.Equal(t, 55, parched[1].Energy)
}

func TestRecoveryForecast_StressFloor(t *testing.T) {
	state := baselineState()
	state.StressLevel.Value = 12

	points := RecoveryForecast(state)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Stress, 10)
	}
	assert.Equal(t, 10, points[2].Stress)
}

func TestParseForecastResponse(t *testing.T) {
	payload := `[{"time":"+1h","energy":80,"stress":20},{"time":"+2h","energy":75,"stress":25},{"time":"+3h","energy":70,"stress":30},{"time":"+4h","energy":60,"stress":35}]`

	tests := []struct {
		name     string
		response string
		wantErr  bool
	}{
		{name: "bare json", response: payload},
		{name: "json fence", response: "```json\n" + payload + "\n```"},
		{name: "anonymous fence", response: "```\n" + payload + "\n```"},
		{name: "surrounding whitespace", response: "\n  " + payload + "  \n"},
		{name: "not json", response: "I predict you will feel great!", wantErr: true},
		{name: "wrong length", response: `[{"time":"+1h","energy":80,"stress":20}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := parseForecastResponse(tt.response)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, points, 4)
			assert.Equal(t, "+1h", points[0].Time)
			assert.Equal(t, 80, points[0].Energy)
		})
	}
}

func TestForecast_UsesAIWhenAvailable(t *testing.T) {
	mockAI := new(MockAIClient)
	mockAI.On("Complete", mock.Anything, mock.Anything).Return(
		"```json\n[{\"time\":\"+1h\",\"energy\":82,\"stress\":18},{\"time\":\"+2h\",\"energy\":78,\"stress\":22},{\"time\":\"+3h\",\"energy\":71,\"stress\":27},{\"time\":\"+4h\",\"energy\":63,\"stress\":33}]\n```",
		nil,
	)

	svc := NewForecastService(mockAI, zap.NewNop())
	points := svc.Forecast(context.Background(), baselineState(), VariantDecay)

	require.Len(t, points, 4)
	assert.Equal(t, 82, points[0].Energy)
	mockAI.AssertExpectations(t)
}

func TestForecast_FallsBackOnAIError(t *testing.T) {
	mockAI := new(MockAIClient)
	mockAI.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	state := baselineState()
	state.EnergyLevel = 70
	state.StressLevel.Value = 40

	svc := NewForecastService(mockAI, zap.NewNop())
	points := svc.Forecast(context.Background(), state, VariantDecay)

	assert.Equal(t, DecayForecast(state), points)
}

func TestForecast_FallsBackOnMalformedResponse(t *testing.T) {
	mockAI := new(MockAIClient)
	mockAI.On("Complete", mock.Anything, mock.Anything).Return("sorry, no forecast today", nil)

	state := baselineState()
	svc := NewForecastService(mockAI, zap.NewNop())
	points := svc.Forecast(context.Background(), state, VariantDecay)

	assert.Equal(t, DecayForecast(state), points)
}

func TestForecast_RecoveryNeverCallsAI(t *testing.T) {
	mockAI := new(MockAIClient)

	svc := NewForecastService(mockAI, zap.NewNop())
	points := svc.Forecast(context.Background(), baselineState(), VariantRecovery)

	require.Len(t, points, 4)
	mockAI.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}
