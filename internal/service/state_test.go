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

// newTestManager builds a manager with an unreachable collaborator and no
// artificial sync latency, seeded with a deterministic canonical state.
func newTestManager(t *testing.T) *StateManager {
	t.Helper()

	mockAI := new(MockAIClient)
	mockAI.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("offline")).Maybe()

	logger := zap.NewNop()
	m := NewStateManager(
		NewForecastService(mockAI, logger),
		NewInsightService(mockAI, logger),
		0,
		logger,
	)
	m.SetCanonical(baselineState())
	return m
}

// scenarioState is the degraded live state from the demo walkthrough: stress
// and hydration each cost 10 points, so the live score is 80.
func scenarioState() model.HealthState {
	state := baselineState()
	state.HeartRate.Value = 82
	state.StressLevel.Value = 55
	state.Hydration.Value = 42
	state.OxygenLevel.Value = 97
	state.BloodPressureSys.Value = 128
	return state
}

func TestStateManager_SimulationLifecycle(t *testing.T) {
	m := newTestManager(t)
	m.SetCanonical(scenarioState())
	require.Equal(t, 80, m.Score())

	// Drink Water lifts hydration out of penalty range and previews 90.
	snap, err := m.ActivateSimulation("water")
	require.NoError(t, err)
	assert.True(t, snap.Simulated)
	assert.Equal(t, "water", snap.ActiveActionID)
	assert.False(t, snap.RiskMode)
	assert.Equal(t, 90, snap.WellnessScore)
	assert.Equal(t, 95.0, snap.State.Hydration.Value)

	// The canonical state is untouched underneath the preview.
	assert.Equal(t, 42.0, m.Canonical().Hydration.Value)

	// Clearing restores the live view and score.
	snap = m.ClearSimulation()
	assert.False(t, snap.Simulated)
	assert.Empty(t, snap.ActiveActionID)
	assert.Equal(t, 80, snap.WellnessScore)
	assert.Equal(t, 42.0, snap.State.Hydration.Value)
}

func TestStateManager_ActivateUnknownAction(t *testing.T) {
	m := newTestManager(t)
	_, err := m.ActivateSimulation("teleport")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestStateManager_NewActionReplacesOld(t *testing.T) {
	m := newTestManager(t)

	_, err := m.ActivateSimulation("water")
	require.NoError(t, err)

	// Panic replaces the water preview outright; hydration falls back to the
	// canonical value because panic does not touch it.
	snap, err := m.ActivateSimulation("panic")
	require.NoError(t, err)
	assert.Equal(t, "panic", snap.ActiveActionID)
	assert.True(t, snap.RiskMode)
	assert.Equal(t, 130.0, snap.State.HeartRate.Value)
	assert.Equal(t, m.Canonical().Hydration.Value, snap.State.Hydration.Value)
}

func TestStateManager_ClearIsIdempotent(t *testing.T) {
	m := newTestManager(t)

	first := m.ClearSimulation()
	second := m.ClearSimulation()

	assert.Equal(t, first.WellnessScore, second.WellnessScore)
	assert.False(t, second.Simulated)
	assert.False(t, second.RiskMode)
}

func TestStateManager_RiskModeFollowsCategory(t *testing.T) {
	m := newTestManager(t)

	for _, a := range Actions() {
		snap, err := m.ActivateSimulation(a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.Category == model.CategoryRisk, snap.RiskMode, "action %s", a.ID)
	}
	m.ClearSimulation()
}

func TestStateManager_RefreshKeepsSymptoms(t *testing.T) {
	m := newTestManager(t)

	reported := m.AddSymptom("Headache", model.RegionHead)
	assert.NotEmpty(t, reported.ID)
	assert.Equal(t, model.SeverityMild, reported.Severity)

	snap := m.Refresh(context.Background())

	require.Len(t, snap.State.Symptoms, 1)
	assert.Equal(t, "Headache", snap.State.Symptoms[0].Name)

	// Vitals did regenerate: histories are full again.
	assert.Len(t, snap.State.HeartRate.History, model.HistoryLength)
}

func TestStateManager_StaleFetchesAreDiscarded(t *testing.T) {
	m := newTestManager(t)

	m.mu.Lock()
	m.generation = 5
	staleGen := uint64(4)
	before := m.insight
	m.mu.Unlock()

	// A fetch issued before the latest refresh must not overwrite state.
	m.fetchInsight(context.Background(), staleGen, baselineState())
	m.fetchForecast(context.Background(), staleGen, baselineState())

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, before, m.insight)
	assert.Empty(t, m.forecast)
}

func TestStateManager_CurrentFetchLands(t *testing.T) {
	m := newTestManager(t)

	m.mu.Lock()
	gen := m.generation
	m.mu.Unlock()

	m.fetchInsight(context.Background(), gen, baselineState())
	m.fetchForecast(context.Background(), gen, baselineState())

	// The collaborator is offline, so the fallbacks land.
	assert.Equal(t, InsightFallback, m.Insight())
	m.mu.Lock()
	defer m.mu.Unlock()
	require.Len(t, m.forecast, 4)
}

func TestStateManager_ForecastFor(t *testing.T) {
	m := newTestManager(t)
	state := m.Canonical()

	decay := m.ForecastFor(context.Background(), VariantDecay)
	assert.Equal(t, DecayForecast(state), decay)

	recovery := m.ForecastFor(context.Background(), VariantRecovery)
	assert.Equal(t, RecoveryForecast(state), recovery)
	assert.Equal(t, "Now", recovery[0].Time)
}

func TestStateManager_ChatReplyFallsBack(t *testing.T) {
	m := newTestManager(t)
	reply := m.ChatReply(context.Background(), nil, "am I ok?")
	assert.Equal(t, ChatFallback, reply)
}

func TestStateManager_Medications(t *testing.T) {
	m := newTestManager(t)

	meds := m.Medications()
	require.NotEmpty(t, meds)
	require.False(t, meds[0].Taken)

	updated, err := m.MarkMedicationTaken(meds[0].ID)
	require.NoError(t, err)
	assert.True(t, updated.Taken)

	_, err = m.MarkMedicationTaken("nope")
	assert.ErrorIs(t, err, ErrUnknownMedication)
}

func TestStateManager_AuxiliaryRecords(t *testing.T) {
	m := newTestManager(t)

	assert.NotEmpty(t, m.Appointments())
	assert.NotZero(t, m.Environment().Temperature)
	assert.NotZero(t, m.Activity().StepGoal)

	before := m.Device().LastSync
	after := m.SyncDevice()
	assert.False(t, after.IsSyncing)
	assert.False(t, after.LastSync.Before(before))
}

func TestStateManager_DashboardSnapshotIsACopy(t *testing.T) {
	m := newTestManager(t)

	snap := m.Dashboard()
	snap.State.HeartRate.Value = -1
	snap.State.HeartRate.History[0] = -1

	fresh := m.Canonical()
	assert.NotEqual(t, -1.0, fresh.HeartRate.Value)
	assert.NotEqual(t, -1.0, fresh.HeartRate.History[0])
}

func TestStateManager_ReadinessComesFromLiveState(t *testing.T) {
	m := newTestManager(t)
	m.SetCanonical(scenarioState())

	liveReadiness, liveLabel := ReadinessScore(m.Canonical())

	snap, err := m.ActivateSimulation("rest")
	require.NoError(t, err)

	// The preview changes the wellness score but readiness stays anchored to
	// the live vitals.
	assert.Equal(t, liveReadiness, snap.ReadinessScore)
	assert.Equal(t, liveLabel, snap.ReadinessLabel)
}
