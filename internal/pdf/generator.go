package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/pkg/model"
)

// Generator renders the wellness report.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new Generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{
		logger: logger,
	}
}

// ReportData contains everything the wellness report renders.
type ReportData struct {
	UserName       string
	GeneratedAt    time.Time
	State          model.HealthState
	WellnessScore  int
	ReadinessScore int
	ReadinessLabel string
	Medications    []model.Medication
	Appointments   []model.Appointment
	Forecast       []model.ForecastPoint
}

// Generate creates a PDF wellness report from the provided data.
func (g *Generator) Generate(data *ReportData) ([]byte, error) {
	g.logger.Info("generating wellness report",
		zap.String("user_name", data.UserName),
		zap.Int("wellness_score", data.WellnessScore),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	g.addTitle(pdf, data)
	g.addScores(pdf, data)
	g.addVitals(pdf, data.State)
	g.addSymptoms(pdf, data.State.Symptoms)
	g.addMedications(pdf, data.Medications)
	g.addAppointments(pdf, data.Appointments)
	g.addForecast(pdf, data.Forecast)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		g.logger.Error("failed to generate PDF", zap.Error(err))
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	g.logger.Info("wellness report generated",
		zap.Int("size_bytes", buf.Len()),
	)

	return buf.Bytes(), nil
}

func (g *Generator) addTitle(pdf *gofpdf.Fpdf, data *ReportData) {
	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, "Aura Wellness Report", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("User: %s", data.UserName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", data.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func (g *Generator) addScores(pdf *gofpdf.Fpdf, data *ReportData) {
	g.sectionHeader(pdf, "Scores")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Wellness: %d / 100", data.WellnessScore), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Readiness: %d / 100 (%s)", data.ReadinessScore, data.ReadinessLabel), "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

func (g *Generator) addVitals(pdf *gofpdf.Fpdf, state model.HealthState) {
	g.sectionHeader(pdf, "Vital Signs")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 7, "Vital", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Value", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Trend", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, v := range []model.VitalSign{
		state.HeartRate,
		state.BloodPressureSys,
		state.BloodPressureDia,
		state.OxygenLevel,
		state.Temperature,
		state.StressLevel,
		state.Hydration,
	} {
		pdf.CellFormat(60, 7, v.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.1f %s", v.Value, v.Unit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, string(v.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 7, string(v.Trend), "1", 1, "C", false, 0, "")
	}

	pdf.CellFormat(60, 7, "Energy Level", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, fmt.Sprintf("%d /100", state.EnergyLevel), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "-", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "-", "1", 1, "C", false, 0, "")
	pdf.Ln(5)
}

func (g *Generator) addSymptoms(pdf *gofpdf.Fpdf, symptoms []model.Symptom) {
	g.sectionHeader(pdf, "Reported Symptoms")

	pdf.SetFont("Arial", "", 10)
	if len(symptoms) == 0 {
		pdf.CellFormat(0, 7, "No symptoms reported.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, s := range symptoms {
		pdf.CellFormat(0, 7, fmt.Sprintf("%s - %s (%s), reported %s",
			s.Name, s.Region, s.Severity, s.ReportedAt.Format("2006-01-02 15:04")),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *Generator) addMedications(pdf *gofpdf.Fpdf, medications []model.Medication) {
	g.sectionHeader(pdf, "Medications")

	pdf.SetFont("Arial", "", 10)
	if len(medications) == 0 {
		pdf.CellFormat(0, 7, "No medications on schedule.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, m := range medications {
		status := "pending"
		if m.Taken {
			status = "taken"
		}
		pdf.CellFormat(0, 7, fmt.Sprintf("%s %s at %s - %s", m.Name, m.Dosage, m.Time, status),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *Generator) addAppointments(pdf *gofpdf.Fpdf, appointments []model.Appointment) {
	g.sectionHeader(pdf, "Upcoming Appointments")

	pdf.SetFont("Arial", "", 10)
	if len(appointments) == 0 {
		pdf.CellFormat(0, 7, "No upcoming appointments.", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	for _, a := range appointments {
		pdf.CellFormat(0, 7, fmt.Sprintf("%s (%s) - %s, %s",
			a.DoctorName, a.Specialty, a.Date.Format("2006-01-02"), a.Type),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (g *Generator) addForecast(pdf *gofpdf.Fpdf, forecast []model.ForecastPoint) {
	g.sectionHeader(pdf, "Forecast")

	pdf.SetFont("Arial", "", 10)
	if len(forecast) == 0 {
		pdf.CellFormat(0, 7, "No forecast available.", "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 7, "Time", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Energy", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Stress", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, p := range forecast {
		pdf.CellFormat(30, 7, p.Time, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d", p.Energy), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%d", p.Stress), "1", 1, "C", false, 0, "")
	}
}

func (g *Generator) sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}
