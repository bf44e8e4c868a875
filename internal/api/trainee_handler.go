package api

import (
	"net/http"

	"github.com/NazarVavrushchak/Sports-centre/internal/service"

	"github.com/gin-gonic/gin"
)

// TraineeHandler holds the trainee service dependency.
type TraineeHandler struct {
	traineeService service.TraineeService
}

// NewTraineeHandler creates a new TraineeHandler.
func NewTraineeHandler(traineeService service.TraineeService) *TraineeHandler {
	return &TraineeHandler{traineeService: traineeService}
}

// Register creates a trainee and returns the issued credentials.
func (h *TraineeHandler) Register(c *gin.Context) {
	var req service.CreateTraineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	creds, err := h.traineeService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, creds)
}

// GetProfile returns the authenticated trainee's profile.
func (h *TraineeHandler) GetProfile(c *gin.Context) {
	profile, err := h.traineeService.GetProfile(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial profile update.
func (h *TraineeHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateTraineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	profile, err := h.traineeService.UpdateProfile(c.Request.Context(), c.GetHeader("Authorization"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ToggleStatus flips the active flag and returns the new value.
func (h *TraineeHandler) ToggleStatus(c *gin.Context) {
	isActive, err := h.traineeService.ToggleStatus(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isActive": isActive})
}

// Delete removes the authenticated trainee and everything it owns.
func (h *TraineeHandler) Delete(c *gin.Context) {
	if err := h.traineeService.Delete(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
