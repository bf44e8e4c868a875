package api

import (
	"net/http"
	"time"

	"github.com/NazarVavrushchak/Sports-centre/internal/service"

	"github.com/gin-gonic/gin"
)

// Date-only format for query parameters.
const dateLayout = "2006-01-02"

// TrainingHandler holds the training service dependency.
type TrainingHandler struct {
	trainingService service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// AddTraining records a new training.
func (h *TrainingHandler) AddTraining(c *gin.Context) {
	var req service.AddTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	record, err := h.trainingService.AddTraining(c.Request.Context(), c.GetHeader("Authorization"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// TraineeTrainings returns the authenticated trainee's filtered history.
func (h *TrainingHandler) TraineeTrainings(c *gin.Context) {
	query, ok := parseTrainingQuery(c)
	if !ok {
		return
	}

	records, err := h.trainingService.TraineeTrainings(c.Request.Context(), c.GetHeader("Authorization"), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// TrainerTrainings returns the authenticated trainer's filtered history.
func (h *TrainingHandler) TrainerTrainings(c *gin.Context) {
	query, ok := parseTrainingQuery(c)
	if !ok {
		return
	}

	records, err := h.trainingService.TrainerTrainings(c.Request.Context(), c.GetHeader("Authorization"), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// UnassignedActiveTrainers lists active trainers missing from the
// authenticated trainee's roster.
func (h *TrainingHandler) UnassignedActiveTrainers(c *gin.Context) {
	trainers, err := h.trainingService.UnassignedActiveTrainers(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainers)
}

// UpdateTraineeTrainers merges the given trainers into the roster.
func (h *TrainingHandler) UpdateTraineeTrainers(c *gin.Context) {
	var req struct {
		TrainerUsernames []string `json:"trainerUsernames"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	roster, err := h.trainingService.UpdateTraineeTrainers(c.Request.Context(), c.GetHeader("Authorization"), req.TrainerUsernames)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// TrainingTypes returns the training-type catalogue.
func (h *TrainingHandler) TrainingTypes(c *gin.Context) {
	types, err := h.trainingService.TrainingTypes(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

// parseTrainingQuery reads the optional filter parameters. Reports
// false after writing the error response when a date fails to parse.
func parseTrainingQuery(c *gin.Context) (service.TrainingQuery, bool) {
	query := service.TrainingQuery{
		CounterpartUsername: c.Query("counterpart"),
		TrainingTypeName:    c.Query("trainingType"),
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
			return query, false
		}
		query.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
			return query, false
		}
		query.To = &to
	}
	return query, true
}
