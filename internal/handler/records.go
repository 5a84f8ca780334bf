package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-health/aura-backend/internal/service"
	"github.com/aura-health/aura-backend/pkg/model"
)

// RecordsHandler serves the auxiliary display records: symptoms,
// medications, appointments, environment, activity and the wearable.
type RecordsHandler struct {
	manager *service.StateManager
	logger  *zap.Logger
}

// NewRecordsHandler creates a new RecordsHandler
func NewRecordsHandler(manager *service.StateManager, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{
		manager: manager,
		logger:  logger,
	}
}

// SymptomRequest reports a complaint on a body region.
type SymptomRequest struct {
	Name   string           `json:"name" binding:"required"`
	Region model.BodyRegion `json:"region" binding:"required"`
}

var validRegions = map[model.BodyRegion]bool{
	model.RegionHead:    true,
	model.RegionChest:   true,
	model.RegionStomach: true,
	model.RegionLegs:    true,
	model.RegionGeneral: true,
}

// PostSymptom appends a symptom to the live state.
func (h *RecordsHandler) PostSymptom(c *gin.Context) {
	var req SymptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid symptom report", err.Error())
		return
	}
	if !validRegions[req.Region] {
		respondError(c, http.StatusBadRequest, "INVALID_REGION", "region must be head, chest, stomach, legs or general")
		return
	}

	symptom := h.manager.AddSymptom(req.Name, req.Region)
	c.JSON(http.StatusCreated, symptom)
}

// GetMedications returns the medication schedule.
func (h *RecordsHandler) GetMedications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"medications": h.manager.Medications()})
}

// MarkMedicationTaken flips a dose to taken.
func (h *RecordsHandler) MarkMedicationTaken(c *gin.Context) {
	id := c.Param("id")

	med, err := h.manager.MarkMedicationTaken(id)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMedication) {
			respondError(c, http.StatusNotFound, "UNKNOWN_MEDICATION", "No such medication")
			return
		}
		h.logger.Error("failed to mark medication taken", zap.Error(err), zap.String("id", id))
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update medication")
		return
	}

	c.JSON(http.StatusOK, med)
}

// GetAppointments returns upcoming visits.
func (h *RecordsHandler) GetAppointments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"appointments": h.manager.Appointments()})
}

// GetEnvironment returns outdoor conditions.
func (h *RecordsHandler) GetEnvironment(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Environment())
}

// GetActivity returns the daily movement summary.
func (h *RecordsHandler) GetActivity(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Activity())
}

// GetDevice returns the wearable status.
func (h *RecordsHandler) GetDevice(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Device())
}

// SyncDevice runs a manual wearable sync.
func (h *RecordsHandler) SyncDevice(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.SyncDevice())
}
