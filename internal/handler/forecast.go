package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/service"
)

// ForecastHandler serves on-demand (energy, stress) projections.
type ForecastHandler struct {
	manager *service.StateManager
	logger  *zap.Logger
}

// NewForecastHandler creates a new ForecastHandler
func NewForecastHandler(manager *service.StateManager, logger *zap.Logger) *ForecastHandler {
	return &ForecastHandler{
		manager: manager,
		logger:  logger,
	}
}

// GetForecast computes a projection for the live state. The decay variant is
// the default; `?variant=recovery` selects the local recovery curve.
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	variant := service.ForecastVariant(c.DefaultQuery("variant", string(service.VariantDecay)))
	if variant != service.VariantDecay && variant != service.VariantRecovery {
		respondError(c, http.StatusBadRequest, "INVALID_VARIANT", "variant must be decay or recovery")
		return
	}

	points := h.manager.ForecastFor(c.Request.Context(), variant)
	c.JSON(http.StatusOK, gin.H{
		"variant": variant,
		"points":  points,
	})
}
