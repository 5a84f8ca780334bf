package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/pdf"
)

// ReportService assembles the wellness report from the live session state.
type ReportService struct {
	manager   *StateManager
	generator *pdf.Generator
	logger    *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(manager *StateManager, generator *pdf.Generator, logger *zap.Logger) *ReportService {
	return &ReportService{
		manager:   manager,
		generator: generator,
		logger:    logger,
	}
}

// Generate renders the current session as a PDF. The forecast section uses
// the on-demand decay projection so the report never waits on the
// collaborator beyond its own timeout.
func (s *ReportService) Generate(ctx context.Context, userName string) ([]byte, error) {
	state := s.manager.Canonical()
	readiness, label := ReadinessScore(state)

	data := &pdf.ReportData{
		UserName:       userName,
		GeneratedAt:    time.Now(),
		State:          state,
		WellnessScore:  WellnessScore(state),
		ReadinessScore: readiness,
		ReadinessLabel: label,
		Medications:    s.manager.Medications(),
		Appointments:   s.manager.Appointments(),
		Forecast:       s.manager.ForecastFor(ctx, VariantDecay),
	}

	out, err := s.generator.Generate(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate wellness report: %w", err)
	}

	s.logger.Info("wellness report ready",
		zap.String("user_name", userName),
		zap.Int("size_bytes", len(out)),
	)

	return out, nil
}
