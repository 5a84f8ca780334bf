package service

import (
	"math/rand"
	"time"

	"github.com/aura-health/aura-backend/pkg/model"
)

// GenerateVitals produces a fresh randomized HealthState snapshot in the
// ranges the wearable would report. Status and trend are seeded with
// plausible defaults; RefreshVitalStatuses tightens them afterwards.
func GenerateVitals(rng *rand.Rand) model.HealthState {
	r := func(min, max int) float64 {
		return float64(rng.Intn(max-min+1) + min)
	}
	hist := func(min, max int) []float64 {
		out := make([]float64, model.HistoryLength)
		for i := range out {
			out[i] = r(min, max)
		}
		return out
	}

	return model.HealthState{
		EnergyLevel: int(r(40, 80)),
		HeartRate: model.VitalSign{
			ID: "hr", Name: "Heart Rate", Value: r(65, 95), Unit: "bpm",
			Status: model.StatusNormal, Trend: model.TrendStable, History: hist(60, 100),
			Description: "Beats per minute.",
		},
		BloodPressureSys: model.VitalSign{
			ID: "bp_sys", Name: "Systolic BP", Value: r(115, 135), Unit: "mmHg",
			Status: model.StatusNormal, Trend: model.TrendUp, History: hist(110, 145),
			Description: "Upper arterial pressure.",
		},
		BloodPressureDia: model.VitalSign{
			ID: "bp_dia", Name: "Diastolic BP", Value: r(75, 85), Unit: "mmHg",
			Status: model.StatusNormal, Trend: model.TrendStable, History: hist(70, 90),
			Description: "Lower arterial pressure.",
		},
		OxygenLevel: model.VitalSign{
			ID: "spo2", Name: "SpO2", Value: r(96, 99), Unit: "%",
			Status: model.StatusNormal, Trend: model.TrendStable, History: hist(95, 100),
			Description: "Oxygen saturation.",
		},
		Temperature: model.VitalSign{
			ID: "temp", Name: "Body Temp", Value: 36.6, Unit: "°C",
			Status: model.StatusNormal, Trend: model.TrendStable, History: hist(36, 37),
			Description: "Core body temperature.",
		},
		StressLevel: model.VitalSign{
			ID: "stress", Name: "Stress Load", Value: r(30, 60), Unit: "/100",
			Status: model.StatusNormal, Trend: model.TrendDown, History: hist(20, 80),
			Description: "HRV based stress score.",
		},
		Hydration: model.VitalSign{
			ID: "hydro", Name: "Hydration", Value: r(30, 70), Unit: "%",
			Status: model.StatusWarning, Trend: model.TrendDown, History: hist(40, 90),
			Description: "Estimated water levels.",
		},
	}
}

// RefreshVitalStatuses applies the status adjustments done after each
// regeneration: low hydration and elevated heart rate are flagged.
func RefreshVitalStatuses(state *model.HealthState) {
	if state.Hydration.Value < 40 {
		state.Hydration.Status = model.StatusWarning
	}
	if state.HeartRate.Value > 100 {
		state.HeartRate.Status = model.StatusWarning
	}
}

// SeedMedications returns the default medication schedule.
func SeedMedications() []model.Medication {
	return []model.Medication{
		{ID: "med-lisinopril", Name: "Lisinopril", Dosage: "10mg", Time: "08:00"},
		{ID: "med-metformin", Name: "Metformin", Dosage: "500mg", Time: "13:00"},
		{ID: "med-atorvastatin", Name: "Atorvastatin", Dosage: "20mg", Time: "21:00"},
	}
}

// SeedAppointments returns the default upcoming appointments.
func SeedAppointments(now time.Time) []model.Appointment {
	return []model.Appointment{
		{
			ID:         "appt-1",
			DoctorName: "Dr. Emily Wei",
			Specialty:  "General Practitioner",
			Date:       now.Add(5 * 24 * time.Hour),
			Type:       model.AppointmentVideo,
		},
	}
}

// SeedEnvironment returns the default outdoor conditions.
func SeedEnvironment() model.EnvironmentalState {
	return model.EnvironmentalState{
		Temperature: 22.5,
		AirQuality:  "Good",
		NoiseLevel:  42,
		IsRaining:   false,
	}
}

// SeedActivity returns the default daily activity summary.
func SeedActivity() model.ActivityData {
	return model.ActivityData{
		Steps:          6540,
		StepGoal:       8000,
		CaloriesBurned: 480,
		ActiveMinutes:  38,
	}
}

// SeedDevice returns the default wearable status.
func SeedDevice(now time.Time) model.DeviceStatus {
	return model.DeviceStatus{
		DeviceName:   "Aura Band 2",
		IsConnected:  true,
		BatteryLevel: 85,
		LastSync:     now,
	}
}
