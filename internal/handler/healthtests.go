package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/service"
)

// HealthTestHandler serves the active health test mini-games.
type HealthTestHandler struct {
	tests  *service.HealthTestService
	logger *zap.Logger
}

// NewHealthTestHandler creates a new HealthTestHandler
func NewHealthTestHandler(tests *service.HealthTestService, logger *zap.Logger) *HealthTestHandler {
	return &HealthTestHandler{
		tests:  tests,
		logger: logger,
	}
}

func (h *HealthTestHandler) respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnknownSession) || errors.Is(err, service.ErrSessionMismatch) {
		respondError(c, http.StatusNotFound, "UNKNOWN_SESSION", "No such test session")
		return
	}
	h.logger.Error("health test failed", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Health test failed")
}

// StartBreathHold begins a breath-hold measurement.
func (h *HealthTestHandler) StartBreathHold(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"id": h.tests.StartBreathHold()})
}

// StopBreathHold ends the measurement and grades it.
func (h *HealthTestHandler) StopBreathHold(c *gin.Context) {
	result, err := h.tests.StopBreathHold(c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StartReflex arms a reaction-time test.
func (h *HealthTestHandler) StartReflex(c *gin.Context) {
	c.JSON(http.StatusCreated, h.tests.StartReflex())
}

// TapReflex records the tap.
func (h *HealthTestHandler) TapReflex(c *gin.Context) {
	result, err := h.tests.TapReflex(c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StartTremor begins a stability window.
func (h *HealthTestHandler) StartTremor(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"id": h.tests.StartTremor()})
}

// TremorSampleRequest is one pointer position sample.
type TremorSampleRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PostTremorSample records pointer movement during the window.
func (h *HealthTestHandler) PostTremorSample(c *gin.Context) {
	var req TremorSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid tremor sample", err.Error())
		return
	}

	if err := h.tests.RecordTremorSample(c.Param("id"), req.X, req.Y); err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FinishTremor closes the window and returns the score.
func (h *HealthTestHandler) FinishTremor(c *gin.Context) {
	result, err := h.tests.FinishTremor(c.Param("id"))
	if err != nil {
		h.respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
