package api

import (
	"net/http"

	"github.com/NazarVavrushchak/Sports-centre/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRoutes wires all HTTP endpoints. Registration and login are open;
// everything else authenticates through the Authorization header inside
// the service layer, so no route-level guard is needed here.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	authService service.AuthService,
	traineeService service.TraineeService,
	trainerService service.TrainerService,
	trainingService service.TrainingService,
) {
	traineeHandler := NewTraineeHandler(traineeService)
	trainerHandler := NewTrainerHandler(trainerService)
	trainingHandler := NewTrainingHandler(trainingService)
	userHandler := NewUserHandler(authService, traineeService, trainerService)

	router.Use(TransactionMiddleware(), RequestLogger(logger))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		userGroup := apiV1.Group("/users")
		{
			userGroup.GET("/login", userHandler.Login)
		}

		traineeGroup := apiV1.Group("/trainees")
		{
			traineeGroup.POST("", traineeHandler.Register)
			traineeGroup.GET("/profile", traineeHandler.GetProfile)
			traineeGroup.PUT("/profile", traineeHandler.UpdateProfile)
			traineeGroup.PUT("/password", userHandler.ChangeTraineePassword)
			traineeGroup.PATCH("/status", traineeHandler.ToggleStatus)
			traineeGroup.DELETE("", traineeHandler.Delete)

			traineeGroup.GET("/trainings", trainingHandler.TraineeTrainings)
			traineeGroup.GET("/trainers/unassigned", trainingHandler.UnassignedActiveTrainers)
			traineeGroup.PUT("/trainers", trainingHandler.UpdateTraineeTrainers)
		}

		trainerGroup := apiV1.Group("/trainers")
		{
			trainerGroup.POST("", trainerHandler.Register)
			trainerGroup.GET("/profile", trainerHandler.GetProfile)
			trainerGroup.PUT("/profile", trainerHandler.UpdateProfile)
			trainerGroup.PUT("/password", userHandler.ChangeTrainerPassword)
			trainerGroup.PATCH("/status", trainerHandler.ToggleStatus)
			trainerGroup.DELETE("", trainerHandler.Delete)

			trainerGroup.GET("/trainings", trainingHandler.TrainerTrainings)
		}

		trainingGroup := apiV1.Group("/trainings")
		{
			trainingGroup.POST("", trainingHandler.AddTraining)
			trainingGroup.GET("/types", trainingHandler.TrainingTypes)
		}
	}
}
