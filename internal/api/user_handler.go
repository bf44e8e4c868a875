package api

import (
	"net/http"

	"github.com/NazarVavrushchak/Sports-centre/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler covers the operations shared by both principal kinds:
// login checks and password rotation.
type UserHandler struct {
	authService    service.AuthService
	traineeService service.TraineeService
	trainerService service.TrainerService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService service.AuthService, traineeService service.TraineeService, trainerService service.TrainerService) *UserHandler {
	return &UserHandler{
		authService:    authService,
		traineeService: traineeService,
		trainerService: trainerService,
	}
}

// Login validates the credential token and reports the principal kind.
func (h *UserHandler) Login(c *gin.Context) {
	identity, err := h.authService.AuthenticateToken(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": identity.Username, "kind": identity.Kind})
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangeTraineePassword rotates the authenticated trainee's password.
func (h *UserHandler) ChangeTraineePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.traineeService.ChangePassword(c.Request.Context(), c.GetHeader("Authorization"), req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ChangeTrainerPassword rotates the authenticated trainer's password.
func (h *UserHandler) ChangeTrainerPassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.trainerService.ChangePassword(c.Request.Context(), c.GetHeader("Authorization"), req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
