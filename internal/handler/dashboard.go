package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/service"
)

// DashboardHandler serves the aggregate dashboard view.
type DashboardHandler struct {
	manager *service.StateManager
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(manager *service.StateManager, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		manager: manager,
		logger:  logger,
	}
}

// GetDashboard returns the current display state with scores and insight.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Dashboard())
}

// Refresh regenerates the vitals and kicks off the async insight and
// forecast fetches. The response carries the fresh snapshot; the AI fields
// update in the background.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	snapshot := h.manager.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, snapshot)
}
