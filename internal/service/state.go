package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/pkg/model"
)

// ErrUnknownMedication is returned when a dose is marked taken for a
// medication that is not on the schedule.
var ErrUnknownMedication = fmt.Errorf("unknown medication")

// StateManager owns the canonical HealthState and everything derived from
// it: the optional simulated overlay, the risk-mode flag, the wellness
// score, and the latest insight and forecast. It is the single writer; all
// mutation goes through its methods and replaces values instead of editing
// them in place.
type StateManager struct {
	mu sync.Mutex

	canonical      model.HealthState
	simulated      *model.HealthState
	activeActionID string
	riskMode       bool
	score          int

	insight  string
	forecast []model.ForecastPoint

	// generation invalidates in-flight insight/forecast fetches: a response
	// is dropped if a newer refresh has been issued since it started.
	generation uint64

	medications  []model.Medication
	appointments []model.Appointment
	environment  model.EnvironmentalState
	activity     model.ActivityData
	device       model.DeviceStatus

	forecasts   *ForecastService
	insights    *InsightService
	syncLatency time.Duration
	rng         *rand.Rand
	now         func() time.Time
	logger      *zap.Logger
}

// NewStateManager seeds the session: a randomized canonical state, the
// default auxiliary records, and a placeholder insight until the first
// refresh completes.
func NewStateManager(forecasts *ForecastService, insights *InsightService, syncLatency time.Duration, logger *zap.Logger) *StateManager {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now

	state := GenerateVitals(rng)
	RefreshVitalStatuses(&state)

	return &StateManager{
		canonical:    state,
		score:        WellnessScore(state),
		insight:      "Initializing Aura...",
		medications:  SeedMedications(),
		appointments: SeedAppointments(now()),
		environment:  SeedEnvironment(),
		activity:     SeedActivity(),
		device:       SeedDevice(now()),
		forecasts:    forecasts,
		insights:     insights,
		syncLatency:  syncLatency,
		rng:          rng,
		now:          now,
		logger:       logger,
	}
}

// DashboardSnapshot is everything the dashboard renders at once.
type DashboardSnapshot struct {
	State          model.HealthState     `json:"state"`
	Simulated      bool                  `json:"simulated"`
	ActiveActionID string                `json:"active_action_id,omitempty"`
	RiskMode       bool                  `json:"risk_mode"`
	WellnessScore  int                   `json:"wellness_score"`
	ReadinessScore int                   `json:"readiness_score"`
	ReadinessLabel string                `json:"readiness_label"`
	Insight        string                `json:"insight"`
	Forecast       []model.ForecastPoint `json:"forecast,omitempty"`
	Device         model.DeviceStatus    `json:"device"`
}

// Dashboard returns the current display state: the simulated overlay when a
// preview is active, the canonical state otherwise. Readiness is always
// computed from the canonical (live) state.
func (m *StateManager) Dashboard() DashboardSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	display := m.canonical
	if m.simulated != nil {
		display = *m.simulated
	}

	readiness, label := ReadinessScore(m.canonical)

	return DashboardSnapshot{
		State:          display.Clone(),
		Simulated:      m.simulated != nil,
		ActiveActionID: m.activeActionID,
		RiskMode:       m.riskMode,
		WellnessScore:  m.score,
		ReadinessScore: readiness,
		ReadinessLabel: label,
		Insight:        m.insight,
		Forecast:       append([]model.ForecastPoint(nil), m.forecast...),
		Device:         m.device,
	}
}

// Refresh regenerates the canonical state from the mock generator, then
// kicks off insight and forecast fetches whose results land independently.
// The blocking part mimics the wearable sync round trip; the AI results
// arrive whenever they arrive and never block the caller.
func (m *StateManager) Refresh(ctx context.Context) DashboardSnapshot {
	m.setSyncing(true)
	if m.syncLatency > 0 {
		time.Sleep(m.syncLatency)
	}

	m.mu.Lock()
	m.generation++
	gen := m.generation

	fresh := GenerateVitals(m.rng)
	RefreshVitalStatuses(&fresh)
	// Symptoms are an append-only log; they survive vital regeneration.
	fresh.Symptoms = m.canonical.Symptoms

	m.canonical = fresh
	if m.simulated == nil {
		m.score = WellnessScore(fresh)
	}
	m.device.IsSyncing = false
	m.device.LastSync = m.now()
	snapshot := fresh.Clone()
	m.mu.Unlock()

	m.logger.Info("vitals refreshed",
		zap.Uint64("generation", gen),
		zap.Int("wellness_score", m.Score()),
	)

	// Detached from the request context: the caller should not cancel these
	// by returning early, and the client applies its own timeout.
	bg := context.WithoutCancel(ctx)
	go m.fetchInsight(bg, gen, snapshot)
	go m.fetchForecast(bg, gen, snapshot)

	return m.Dashboard()
}

func (m *StateManager) fetchInsight(ctx context.Context, gen uint64, state model.HealthState) {
	text := m.insights.GenerateInsight(ctx, state)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		m.logger.Debug("discarding stale insight", zap.Uint64("generation", gen))
		return
	}
	m.insight = text
}

func (m *StateManager) fetchForecast(ctx context.Context, gen uint64, state model.HealthState) {
	points := m.forecasts.Forecast(ctx, state, VariantDecay)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.generation {
		m.logger.Debug("discarding stale forecast", zap.Uint64("generation", gen))
		return
	}
	m.forecast = points
}

func (m *StateManager) setSyncing(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.device.IsSyncing = v
}

// ActivateSimulation previews an action's effect. Activating a new action
// replaces any prior preview outright; effects never stack.
func (m *StateManager) ActivateSimulation(actionID string) (DashboardSnapshot, error) {
	action, err := ActionByID(actionID)
	if err != nil {
		return DashboardSnapshot{}, err
	}

	m.mu.Lock()
	merged := ApplyOverride(m.canonical, action.Effect)
	m.simulated = &merged
	m.activeActionID = action.ID
	m.riskMode = action.Category == model.CategoryRisk
	m.score = WellnessScore(merged)
	m.mu.Unlock()

	m.logger.Info("simulation activated",
		zap.String("action_id", action.ID),
		zap.Bool("risk_mode", m.riskMode),
		zap.Int("wellness_score", m.Score()),
	)

	return m.Dashboard(), nil
}

// ClearSimulation discards the preview and restores the canonical score.
// Clearing when nothing is active is a no-op.
func (m *StateManager) ClearSimulation() DashboardSnapshot {
	m.mu.Lock()
	m.simulated = nil
	m.activeActionID = ""
	m.riskMode = false
	m.score = WellnessScore(m.canonical)
	m.mu.Unlock()

	return m.Dashboard()
}

// AddSymptom appends a user-reported complaint to the canonical state.
// Symptoms are never removed.
func (m *StateManager) AddSymptom(name string, region model.BodyRegion) model.Symptom {
	symptom := model.Symptom{
		ID:         uuid.New().String(),
		Name:       name,
		Severity:   model.SeverityMild,
		Region:     region,
		ReportedAt: m.now(),
	}

	m.mu.Lock()
	m.canonical.Symptoms = append(m.canonical.Symptoms, symptom)
	m.mu.Unlock()

	m.logger.Info("symptom reported",
		zap.String("name", name),
		zap.String("region", string(region)),
	)

	return symptom
}

// Score returns the wellness score of the currently displayed state.
func (m *StateManager) Score() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score
}

// Canonical returns a copy of the live state.
func (m *StateManager) Canonical() model.HealthState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canonical.Clone()
}

// SetCanonical replaces the live state wholesale and recomputes the score.
// Used to seed demo scenarios.
func (m *StateManager) SetCanonical(state model.HealthState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.canonical = state.Clone()
	if m.simulated == nil {
		m.score = WellnessScore(m.canonical)
	}
}

// ForecastFor computes a projection for the live state on demand.
func (m *StateManager) ForecastFor(ctx context.Context, variant ForecastVariant) []model.ForecastPoint {
	state := m.Canonical()
	points := m.forecasts.Forecast(ctx, state, variant)

	if variant == VariantDecay {
		m.mu.Lock()
		m.forecast = points
		m.mu.Unlock()
	}
	return points
}

// Insight returns the most recent insight text.
func (m *StateManager) Insight() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insight
}

// ChatReply answers a chat message against the live state.
func (m *StateManager) ChatReply(ctx context.Context, history []model.ChatMessage, message string) string {
	return m.insights.Chat(ctx, m.Canonical(), history, message)
}

// Medications returns the medication schedule.
func (m *StateManager) Medications() []model.Medication {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Medication(nil), m.medications...)
}

// MarkMedicationTaken flips a dose to taken.
func (m *StateManager) MarkMedicationTaken(id string) (model.Medication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.medications {
		if m.medications[i].ID == id {
			m.medications[i].Taken = true
			return m.medications[i], nil
		}
	}
	return model.Medication{}, fmt.Errorf("%w: %s", ErrUnknownMedication, id)
}

// Appointments returns the upcoming visits.
func (m *StateManager) Appointments() []model.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Appointment(nil), m.appointments...)
}

// Environment returns the outdoor conditions.
func (m *StateManager) Environment() model.EnvironmentalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.environment
}

// Activity returns the daily movement summary.
func (m *StateManager) Activity() model.ActivityData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activity
}

// Device returns the wearable status.
func (m *StateManager) Device() model.DeviceStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.device
}

// SyncDevice runs a manual device sync with the artificial latency window.
func (m *StateManager) SyncDevice() model.DeviceStatus {
	m.setSyncing(true)
	if m.syncLatency > 0 {
		time.Sleep(m.syncLatency)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.device.IsSyncing = false
	m.device.LastSync = m.now()
	return m.device
}
