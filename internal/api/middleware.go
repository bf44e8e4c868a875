package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/NazarVavrushchak/Sports-centre/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransactionMiddleware stamps every inbound request with a transaction
// id so log lines across the service layer can be correlated.
func TransactionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(service.WithTransactionID(c.Request.Context()))
		c.Next()
	}
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request handled",
			zap.String("transactionId", service.TransactionID(c.Request.Context())),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// abortWithError sends a standardized JSON error response.
func abortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// respondError maps service-layer failures onto HTTP statuses. The
// service returns typed errors only; this is the single place where
// they meet the wire.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrEmptyTrainerList),
		errors.Is(err, service.ErrInvalidPassword):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTraineeNotFound),
		errors.Is(err, service.ErrTrainerNotFound),
		errors.Is(err, service.ErrTrainingTypeNotFound),
		errors.Is(err, service.ErrSpecializationNotFound),
		errors.Is(err, service.ErrTrainersUnresolved):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "internal error")
	}
}
