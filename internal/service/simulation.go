package service

import (
	"fmt"

	"github.com/aura-health/aura-backend/pkg/model"
)

// ErrUnknownAction is returned when a simulation is requested for an action
// ID not present in the catalog.
var ErrUnknownAction = fmt.Errorf("unknown simulation action")

// ApplyOverride produces a hypothetical HealthState by applying a partial
// override to a deep copy of the canonical state. Vital patches shallow-merge
// onto the canonical vital (set fields win, unset fields are retained); the
// bare energy scalar replaces outright. Neither input is mutated.
func ApplyOverride(canonical model.HealthState, override model.StateOverride) model.HealthState {
	out := canonical.Clone()

	patchVital(&out.HeartRate, override.HeartRate)
	patchVital(&out.BloodPressureSys, override.BloodPressureSys)
	patchVital(&out.BloodPressureDia, override.BloodPressureDia)
	patchVital(&out.OxygenLevel, override.OxygenLevel)
	patchVital(&out.Temperature, override.Temperature)
	patchVital(&out.StressLevel, override.StressLevel)
	patchVital(&out.Hydration, override.Hydration)

	if override.EnergyLevel != nil {
		out.EnergyLevel = *override.EnergyLevel
	}

	return out
}

func patchVital(target *model.VitalSign, patch *model.VitalPatch) {
	if patch == nil {
		return
	}
	if patch.Value != nil {
		target.Value = *patch.Value
	}
	if patch.Status != nil {
		target.Status = *patch.Status
	}
	if patch.Trend != nil {
		target.Trend = *patch.Trend
	}
	if patch.Unit != nil {
		target.Unit = *patch.Unit
	}
	if patch.Name != nil {
		target.Name = *patch.Name
	}
}

func f64(v float64) *float64 { return &v }

func intp(v int) *int { return &v }

func vs(s model.VitalStatus) *model.VitalStatus { return &s }

func tr(t model.Trend) *model.Trend { return &t }

// actionCatalog is the static set of predefined interventions. Healthy
// actions preview a benefit; risk factors preview a harm and flip the
// dashboard into risk mode.
var actionCatalog = []model.SimulationAction{
	{
		ID:       "water",
		Label:    "Drink Water",
		Category: model.CategoryHealthy,
		Effect: model.StateOverride{
			Hydration:   &model.VitalPatch{Value: f64(95), Status: vs(model.StatusNormal), Trend: tr(model.TrendUp)},
			EnergyLevel: intp(85),
		},
		Description: "Boosts hydration, improves cognitive function.",
	},
	{
		ID:       "meds",
		Label:    "Take Meds",
		Category: model.CategoryHealthy,
		Effect: model.StateOverride{
			BloodPressureSys: &model.VitalPatch{Value: f64(118), Status: vs(model.StatusNormal), Trend: tr(model.TrendDown)},
			HeartRate:        &model.VitalPatch{Value: f64(72), Status: vs(model.StatusNormal), Trend: tr(model.TrendDown)},
		},
		Description: "Stabilizes blood pressure and heart rhythm.",
	},
	{
		ID:       "breathe",
		Label:    "Deep Breath",
		Category: model.CategoryHealthy,
		Effect: model.StateOverride{
			StressLevel: &model.VitalPatch{Value: f64(25), Status: vs(model.StatusNormal), Trend: tr(model.TrendDown)},
			HeartRate:   &model.VitalPatch{Value: f64(65), Status: vs(model.StatusNormal), Trend: tr(model.TrendDown)},
		},
		Description: "Immediate reduction in cortisol and stress.",
	},
	{
		ID:       "rest",
		Label:    "Short Nap",
		Category: model.CategoryHealthy,
		Effect: model.StateOverride{
			EnergyLevel: intp(95),
			StressLevel: &model.VitalPatch{Value: f64(15), Status: vs(model.StatusNormal), Trend: tr(model.TrendDown)},
		},
		Description: "Restores energy battery significantly.",
	},
	{
		ID:       "skip_meds",
		Label:    "Skip Meds",
		Category: model.CategoryRisk,
		Effect: model.StateOverride{
			BloodPressureSys: &model.VitalPatch{Value: f64(155), Status: vs(model.StatusCritical), Trend: tr(model.TrendUp)},
			HeartRate:        &model.VitalPatch{Value: f64(110), Status: vs(model.StatusWarning), Trend: tr(model.TrendUp)},
			StressLevel:      &model.VitalPatch{Value: f64(75), Status: vs(model.StatusWarning), Trend: tr(model.TrendUp)},
		},
		Description: "Warning: High risk of hypertension spike.",
	},
	{
		ID:       "caffeine",
		Label:    "High Caffeine",
		Category: model.CategoryRisk,
		Effect: model.StateOverride{
			HeartRate:   &model.VitalPatch{Value: f64(105), Status: vs(model.StatusWarning), Trend: tr(model.TrendUp)},
			Hydration:   &model.VitalPatch{Value: f64(30), Status: vs(model.StatusWarning), Trend: tr(model.TrendDown)},
			StressLevel: &model.VitalPatch{Value: f64(65), Status: vs(model.StatusWarning), Trend: tr(model.TrendUp)},
		},
		Description: "Increases heart rate and dehydration.",
	},
	{
		ID:       "salt",
		Label:    "High Salt Meal",
		Category: model.CategoryRisk,
		Effect: model.StateOverride{
			BloodPressureSys: &model.VitalPatch{Value: f64(145), Status: vs(model.StatusWarning), Trend: tr(model.TrendUp)},
			Hydration:        &model.VitalPatch{Value: f64(40), Status: vs(model.StatusWarning), Trend: tr(model.TrendDown)},
		},
		Description: "Fluid retention causes BP increase.",
	},
	{
		ID:       "panic",
		Label:    "Panic Attack",
		Category: model.CategoryRisk,
		Effect: model.StateOverride{
			HeartRate:   &model.VitalPatch{Value: f64(130), Status: vs(model.StatusCritical), Trend: tr(model.TrendUp)},
			OxygenLevel: &model.VitalPatch{Value: f64(94), Status: vs(model.StatusWarning), Trend: tr(model.TrendDown)},
			StressLevel: &model.VitalPatch{Value: f64(95), Status: vs(model.StatusCritical), Trend: tr(model.TrendUp)},
		},
		Description: "Simulates physiological stress response.",
	},
}

// Actions returns the static simulation catalog.
func Actions() []model.SimulationAction {
	out := make([]model.SimulationAction, len(actionCatalog))
	copy(out, actionCatalog)
	return out
}

// ActionByID looks up a catalog action.
func ActionByID(id string) (model.SimulationAction, error) {
	for _, a := range actionCatalog {
		if a.ID == id {
			return a, nil
		}
	}
	return model.SimulationAction{}, fmt.Errorf("%w: %s", ErrUnknownAction, id)
}
