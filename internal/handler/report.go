package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/service"
)

// ReportHandler serves the PDF wellness report.
type ReportHandler struct {
	reports *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger,
	}
}

// GetReport renders and returns the report inline. Nothing is persisted.
func (h *ReportHandler) GetReport(c *gin.Context) {
	userName := c.DefaultQuery("user", "Aura User")

	out, err := h.reports.Generate(c.Request.Context(), userName)
	if err != nil {
		h.logger.Error("failed to generate report", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate report")
		return
	}

	c.Header("Content-Disposition", `inline; filename="aura-wellness-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
