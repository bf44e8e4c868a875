package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NazarVavrushchak/Sports-centre/internal/api"
	"github.com/NazarVavrushchak/Sports-centre/internal/config"
	"github.com/NazarVavrushchak/Sports-centre/internal/repository/mongo"
	"github.com/NazarVavrushchak/Sports-centre/internal/seed"
	"github.com/NazarVavrushchak/Sports-centre/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("starting sports centre server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// --- Database Connection ---
	dbClient, appDB, err := mongo.Connect(context.Background(), cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		logger.Fatal("could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.Disconnect(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	logger.Info("database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		logger.Info("index creation completed")
	}()

	// --- Initialize Repositories ---
	traineeRepo := mongo.NewMongoTraineeRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	trainingRepo := mongo.NewMongoTrainingRepository(appDB)
	trainingTypeRepo := mongo.NewMongoTrainingTypeRepository(appDB)

	// --- Seed Data ---
	loader := &seed.Loader{
		TraineeRepo:      traineeRepo,
		TrainerRepo:      trainerRepo,
		TrainingRepo:     trainingRepo,
		TrainingTypeRepo: trainingTypeRepo,
		Logger:           logger,
	}
	if err := loader.Run(context.Background(), cfg.Seed); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(traineeRepo, trainerRepo, logger)
	traineeService := service.NewTraineeService(traineeRepo, trainerRepo, trainingRepo, trainingTypeRepo, authService, logger)
	trainerService := service.NewTrainerService(trainerRepo, traineeRepo, trainingRepo, trainingTypeRepo, authService, logger)
	trainingService := service.NewTrainingService(trainingRepo, traineeRepo, trainerRepo, trainingTypeRepo, authService, logger)

	// --- Initialize Gin Engine ---
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, logger, authService, traineeService, trainerService, trainingService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen and serve error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
