package model

import "time"

// VitalStatus classifies a vital sign for display purposes. It is a
// presentation hint set by whoever writes the VitalSign; nothing derives it
// from the value.
type VitalStatus string

const (
	StatusNormal   VitalStatus = "normal"
	StatusWarning  VitalStatus = "warning"
	StatusCritical VitalStatus = "critical"
)

// Trend indicates the short-term direction of a vital sign.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// HistoryLength is the fixed size of a vital's sliding history window.
const HistoryLength = 20

// VitalSign is one measured health quantity.
type VitalSign struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Value       float64     `json:"value"`
	Unit        string      `json:"unit"`
	Status      VitalStatus `json:"status"`
	Trend       Trend       `json:"trend"`
	Description string      `json:"description"`
	History     []float64   `json:"history"`
}

// Clone returns an independent copy of the vital, including its history.
func (v VitalSign) Clone() VitalSign {
	out := v
	if v.History != nil {
		out.History = make([]float64, len(v.History))
		copy(out.History, v.History)
	}
	return out
}

// PushHistory appends a sample to the history window, discarding the oldest
// sample once the window is full.
func (v *VitalSign) PushHistory(sample float64) {
	v.History = append(v.History, sample)
	if len(v.History) > HistoryLength {
		v.History = v.History[len(v.History)-HistoryLength:]
	}
}

// BodyRegion is where a reported symptom is located.
type BodyRegion string

const (
	RegionHead    BodyRegion = "head"
	RegionChest   BodyRegion = "chest"
	RegionStomach BodyRegion = "stomach"
	RegionLegs    BodyRegion = "legs"
	RegionGeneral BodyRegion = "general"
)

// SymptomSeverity grades a reported symptom. Only mild is produced today;
// the other grades exist for the report form.
type SymptomSeverity string

const (
	SeverityMild     SymptomSeverity = "mild"
	SeverityModerate SymptomSeverity = "moderate"
	SeveritySevere   SymptomSeverity = "severe"
)

// Symptom is a user-reported complaint. Symptoms are append-only: there is
// no dismissal or expiry path.
type Symptom struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Severity   SymptomSeverity `json:"severity"`
	Region     BodyRegion      `json:"region"`
	ReportedAt time.Time       `json:"reported_at"`
}

// HealthState is the aggregate snapshot of a person's simulated condition at
// one instant. Exactly one canonical HealthState is live per session; a
// second, transient one may exist to preview a simulation.
type HealthState struct {
	HeartRate        VitalSign `json:"heart_rate"`
	BloodPressureSys VitalSign `json:"blood_pressure_sys"`
	BloodPressureDia VitalSign `json:"blood_pressure_dia"`
	OxygenLevel      VitalSign `json:"oxygen_level"`
	Temperature      VitalSign `json:"temperature"`
	StressLevel      VitalSign `json:"stress_level"`
	Hydration        VitalSign `json:"hydration"`
	EnergyLevel      int       `json:"energy_level"`
	Symptoms         []Symptom `json:"symptoms,omitempty"`
}

// Clone returns a deep, independent copy of the state.
func (h HealthState) Clone() HealthState {
	out := h
	out.HeartRate = h.HeartRate.Clone()
	out.BloodPressureSys = h.BloodPressureSys.Clone()
	out.BloodPressureDia = h.BloodPressureDia.Clone()
	out.OxygenLevel = h.OxygenLevel.Clone()
	out.Temperature = h.Temperature.Clone()
	out.StressLevel = h.StressLevel.Clone()
	out.Hydration = h.Hydration.Clone()
	if h.Symptoms != nil {
		out.Symptoms = make([]Symptom, len(h.Symptoms))
		copy(out.Symptoms, h.Symptoms)
	}
	return out
}

// ActionCategory separates beneficial interventions from risk factors. The
// category of the active simulation drives the risk-mode flag.
type ActionCategory string

const (
	CategoryHealthy ActionCategory = "healthy"
	CategoryRisk    ActionCategory = "risk"
)

// VitalPatch is a partial update to a single VitalSign. Set fields overwrite
// the canonical vital; unset fields are retained from it.
type VitalPatch struct {
	Value  *float64     `json:"value,omitempty"`
	Status *VitalStatus `json:"status,omitempty"`
	Trend  *Trend       `json:"trend,omitempty"`
	Unit   *string      `json:"unit,omitempty"`
	Name   *string      `json:"name,omitempty"`
}

// StateOverride is a partial HealthState used as a simulation effect. Vital
// fields patch; EnergyLevel replaces outright.
type StateOverride struct {
	HeartRate        *VitalPatch `json:"heart_rate,omitempty"`
	BloodPressureSys *VitalPatch `json:"blood_pressure_sys,omitempty"`
	BloodPressureDia *VitalPatch `json:"blood_pressure_dia,omitempty"`
	OxygenLevel      *VitalPatch `json:"oxygen_level,omitempty"`
	Temperature      *VitalPatch `json:"temperature,omitempty"`
	StressLevel      *VitalPatch `json:"stress_level,omitempty"`
	Hydration        *VitalPatch `json:"hydration,omitempty"`
	EnergyLevel      *int        `json:"energy_level,omitempty"`
}

// SimulationAction is a predefined hypothetical intervention. Actions are
// static data; being "active" is transient session state.
type SimulationAction struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Category    ActionCategory `json:"category"`
	Effect      StateOverride  `json:"effect"`
	Description string         `json:"description"`
}

// ForecastPoint is one projected future sample.
type ForecastPoint struct {
	Time   string `json:"time"`
	Energy int    `json:"energy"`
	Stress int    `json:"stress"`
}

// ChatRole tags a chat turn as coming from the user or the model.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// Medication is a display-only medication record.
type Medication struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	Time   string `json:"time"`
	Taken  bool   `json:"taken"`
}

// AppointmentType is how a visit is conducted.
type AppointmentType string

const (
	AppointmentVideo    AppointmentType = "Video"
	AppointmentInPerson AppointmentType = "In-Person"
)

// Appointment is an upcoming care visit.
type Appointment struct {
	ID         string          `json:"id"`
	DoctorName string          `json:"doctor_name"`
	Specialty  string          `json:"specialty"`
	Date       time.Time       `json:"date"`
	Type       AppointmentType `json:"type"`
}

// EnvironmentalState describes outdoor conditions around the user.
type EnvironmentalState struct {
	Temperature float64 `json:"temperature"`
	AirQuality  string  `json:"air_quality"`
	NoiseLevel  int     `json:"noise_level"`
	IsRaining   bool    `json:"is_raining"`
}

// ActivityData is the day's movement summary.
type ActivityData struct {
	Steps          int `json:"steps"`
	StepGoal       int `json:"step_goal"`
	CaloriesBurned int `json:"calories_burned"`
	ActiveMinutes  int `json:"active_minutes"`
}

// DeviceStatus describes the wearable feeding the dashboard.
type DeviceStatus struct {
	DeviceName   string    `json:"device_name"`
	IsConnected  bool      `json:"is_connected"`
	BatteryLevel int       `json:"battery_level"`
	LastSync     time.Time `json:"last_sync"`
	IsSyncing    bool      `json:"is_syncing"`
}
