package service

import (
	"math"

	"github.com/aura-health/aura-backend/pkg/model"
)

// Wellness score thresholds. Each penalty is a fixed subtraction from a base
// of 100; the stress penalties stack.
const (
	stressPenaltyThreshold     = 50
	stressHighPenaltyThreshold = 80
	hydrationPenaltyThreshold  = 50
	oxygenPenaltyThreshold     = 95
	heartRateUpperBound        = 100
	heartRateLowerBound        = 50
)

// WellnessScore maps a HealthState to a 0-100 wellness integer. It is pure
// and must be recomputed whenever the displayed state changes; nothing caches
// a prior score.
func WellnessScore(state model.HealthState) int {
	score := 100
	if state.StressLevel.Value > stressPenaltyThreshold {
		score -= 10
	}
	if state.StressLevel.Value > stressHighPenaltyThreshold {
		score -= 20
	}
	if state.Hydration.Value < hydrationPenaltyThreshold {
		score -= 10
	}
	if state.OxygenLevel.Value < oxygenPenaltyThreshold {
		score -= 15
	}
	if state.HeartRate.Value > heartRateUpperBound || state.HeartRate.Value < heartRateLowerBound {
		score -= 10
	}
	if score < 0 {
		score = 0
	}
	return score
}

// Readiness tier labels.
const (
	ReadinessPeak     = "Peak Performance"
	ReadinessGood     = "Good Condition"
	ReadinessRecovery = "Recovery Needed"
)

// ReadinessScore is the second, independently defined score: a weighted
// average of energy (40%), inverse stress (40%) and a binary-thresholded
// oxygen term (20%). It coexists with WellnessScore; the two diverge on
// identical input and are intentionally not unified.
func ReadinessScore(state model.HealthState) (int, string) {
	oxygenTerm := 85.0
	if state.OxygenLevel.Value >= 95 {
		oxygenTerm = 100
	}

	score := int(math.Round(
		0.4*float64(state.EnergyLevel) +
			0.4*(100-state.StressLevel.Value) +
			0.2*oxygenTerm,
	))

	switch {
	case score >= 90:
		return score, ReadinessPeak
	case score >= 75:
		return score, ReadinessGood
	default:
		return score, ReadinessRecovery
	}
}
