package api

import (
	"net/http"

	"github.com/NazarVavrushchak/Sports-centre/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// createTrainerRequest is the wire form; the specialization arrives as
// a hex object id.
type createTrainerRequest struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	SpecializationID string `json:"specializationId" binding:"required"`
}

type updateTrainerRequest struct {
	FirstName        *string `json:"firstName,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	IsActive         *bool   `json:"isActive,omitempty"`
	SpecializationID *string `json:"specializationId,omitempty"`
}

// Register creates a trainer and returns the issued credentials.
func (h *TrainerHandler) Register(c *gin.Context) {
	var req createTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	specializationID, err := primitive.ObjectIDFromHex(req.SpecializationID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid specialization id")
		return
	}

	creds, err := h.trainerService.Create(c.Request.Context(), service.CreateTrainerRequest{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		SpecializationID: specializationID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, creds)
}

// GetProfile returns the authenticated trainer's profile.
func (h *TrainerHandler) GetProfile(c *gin.Context) {
	profile, err := h.trainerService.GetProfile(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial profile update.
func (h *TrainerHandler) UpdateProfile(c *gin.Context) {
	var req updateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	update := service.UpdateTrainerRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  req.IsActive,
	}
	if req.SpecializationID != nil {
		specializationID, err := primitive.ObjectIDFromHex(*req.SpecializationID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid specialization id")
			return
		}
		update.SpecializationID = &specializationID
	}

	profile, err := h.trainerService.UpdateProfile(c.Request.Context(), c.GetHeader("Authorization"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ToggleStatus flips the active flag and returns the new value.
func (h *TrainerHandler) ToggleStatus(c *gin.Context) {
	isActive, err := h.trainerService.ToggleStatus(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"isActive": isActive})
}

// Delete removes the authenticated trainer and everything it owns.
func (h *TrainerHandler) Delete(c *gin.Context) {
	if err := h.trainerService.Delete(c.Request.Context(), c.GetHeader("Authorization")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
