package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/service"
)

// SimulationHandler serves the what-if simulator.
type SimulationHandler struct {
	manager *service.StateManager
	logger  *zap.Logger
}

// NewSimulationHandler creates a new SimulationHandler
func NewSimulationHandler(manager *service.StateManager, logger *zap.Logger) *SimulationHandler {
	return &SimulationHandler{
		manager: manager,
		logger:  logger,
	}
}

// ListActions returns the static simulation catalog.
func (h *SimulationHandler) ListActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actions": service.Actions()})
}

// Activate previews an action's effect on the current state. Activating a
// new action replaces any prior preview.
func (h *SimulationHandler) Activate(c *gin.Context) {
	actionID := c.Param("actionID")

	snapshot, err := h.manager.ActivateSimulation(actionID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAction) {
			respondError(c, http.StatusNotFound, "UNKNOWN_ACTION", "No such simulation action")
			return
		}
		h.logger.Error("failed to activate simulation",
			zap.Error(err),
			zap.String("action_id", actionID),
		)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to activate simulation")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Clear discards the active preview. Clearing with no active preview is a
// no-op and still returns 200.
func (h *SimulationHandler) Clear(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.ClearSimulation())
}
