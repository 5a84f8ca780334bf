package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/service"
	"github.com/aura-health/aura-backend/pkg/model"
)

// AssistantHandler serves the insight text and the chat assistant.
type AssistantHandler struct {
	manager *service.StateManager
	logger  *zap.Logger
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(manager *service.StateManager, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		manager: manager,
		logger:  logger,
	}
}

// GetInsight returns the most recent coaching line.
func (h *AssistantHandler) GetInsight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"insight": h.manager.Insight()})
}

// ChatRequest is a chat turn with its rolling history.
type ChatRequest struct {
	Message string              `json:"message" binding:"required"`
	History []model.ChatMessage `json:"history"`
}

// PostChat answers a free-text question. Collaborator failures surface as a
// canned apology, never as an error status.
func (h *AssistantHandler) PostChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid chat request", err.Error())
		return
	}

	reply := h.manager.ChatReply(c.Request.Context(), req.History, req.Message)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
