package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aura-health/aura-backend/pkg/model"
)

// baselineState returns a state with every vital inside its non-penalized
// range: the wellness score must be exactly 100.
func baselineState() model.HealthState {
	vital := func(id string, value float64, unit string) model.VitalSign {
		return model.VitalSign{
			ID: id, Name: id, Value: value, Unit: unit,
			Status: model.StatusNormal, Trend: model.TrendStable,
			History: []float64{value, value},
		}
	}
	return model.HealthState{
		HeartRate:        vital("hr", 72, "bpm"),
		BloodPressureSys: vital("bp_sys", 120, "mmHg"),
		BloodPressureDia: vital("bp_dia", 80, "mmHg"),
		OxygenLevel:      vital("spo2", 98, "%"),
		Temperature:      vital("temp", 36.6, "°C"),
		StressLevel:      vital("stress", 30, "/100"),
		Hydration:        vital("hydro", 70, "%"),
		EnergyLevel:      70,
	}
}

func TestWellnessScore_Baseline(t *testing.T) {
	assert.Equal(t, 100, WellnessScore(baselineState()))
}

func TestWellnessScore_Penalties(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.HealthState)
		expected int
	}{
		{
			name:     "stress above 50",
			mutate:   func(s *model.HealthState) { s.StressLevel.Value = 55 },
			expected: 90,
		},
		{
			name:     "stress above 80 stacks both penalties",
			mutate:   func(s *model.HealthState) { s.StressLevel.Value = 90 },
			expected: 70,
		},
		{
			name:     "low hydration",
			mutate:   func(s *model.HealthState) { s.Hydration.Value = 42 },
			expected: 90,
		},
		{
			name:     "low oxygen",
			mutate:   func(s *model.HealthState) { s.OxygenLevel.Value = 93 },
			expected: 85,
		},
		{
			name:     "tachycardia",
			mutate:   func(s *model.HealthState) { s.HeartRate.Value = 120 },
			expected: 90,
		},
		{
			name:     "bradycardia",
			mutate:   func(s *model.HealthState) { s.HeartRate.Value = 45 },
			expected: 90,
		},
		{
			name: "every penalty at once",
			mutate: func(s *model.HealthState) {
				s.StressLevel.Value = 90
				s.Hydration.Value = 20
				s.OxygenLevel.Value = 80
				s.HeartRate.Value = 150
			},
			expected: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := baselineState()
			tt.mutate(&state)
			assert.Equal(t, tt.expected, WellnessScore(state))
		})
	}
}

func TestWellnessScore_ThresholdBoundaries(t *testing.T) {
	state := baselineState()

	// Exactly at the thresholds no penalty applies.
	state.StressLevel.Value = 50
	state.Hydration.Value = 50
	state.OxygenLevel.Value = 95
	state.HeartRate.Value = 100
	assert.Equal(t, 100, WellnessScore(state))

	state.HeartRate.Value = 50
	assert.Equal(t, 100, WellnessScore(state))
}

func TestWellnessScore_EndToEndScenario(t *testing.T) {
	// Live state from the demo walkthrough: stress 55 and hydration 42
	// each cost 10, everything else is in range.
	state := baselineState()
	state.HeartRate.Value = 82
	state.StressLevel.Value = 55
	state.Hydration.Value = 42
	state.OxygenLevel.Value = 97
	state.BloodPressureSys.Value = 128

	assert.Equal(t, 80, WellnessScore(state))
}

func TestReadinessScore_Tiers(t *testing.T) {
	state := baselineState()

	// High energy, low stress, good oxygen.
	state.EnergyLevel = 95
	state.StressLevel.Value = 10
	state.OxygenLevel.Value = 98
	score, label := ReadinessScore(state)
	assert.GreaterOrEqual(t, score, 90)
	assert.Equal(t, ReadinessPeak, label)

	// Middling values land in the good tier.
	state.EnergyLevel = 70
	state.StressLevel.Value = 30
	score, label = ReadinessScore(state)
	assert.Equal(t, 76, score)
	assert.Equal(t, ReadinessGood, label)

	// Exhausted and stressed.
	state.EnergyLevel = 20
	state.StressLevel.Value = 80
	score, label = ReadinessScore(state)
	assert.Less(t, score, 75)
	assert.Equal(t, ReadinessRecovery, label)
}

func TestReadinessScore_BinaryOxygenTerm(t *testing.T) {
	state := baselineState()
	state.EnergyLevel = 50
	state.StressLevel.Value = 50

	state.OxygenLevel.Value = 95
	highOxygen, _ := ReadinessScore(state)

	state.OxygenLevel.Value = 94
	lowOxygen, _ := ReadinessScore(state)

	// The oxygen term is binary: crossing 95 moves the score by exactly
	// 0.2 * (100 - 85) = 3 points.
	assert.Equal(t, 3, highOxygen-lowOxygen)
}

func TestScores_Diverge(t *testing.T) {
	// The two scores are intentionally independent formulas; on this input
	// they disagree and neither is authoritative.
	state := baselineState()
	state.EnergyLevel = 40
	state.StressLevel.Value = 45

	wellness := WellnessScore(state)
	readiness, _ := ReadinessScore(state)
	assert.NotEqual(t, wellness, readiness)
}
