package handlers

import (
	"errors"
	"net/http"

	"github.com/Conceptual-Machines/museforge-api/internal/logger"
	"github.com/Conceptual-Machines/museforge-api/internal/services"
	"github.com/gin-gonic/gin"
)

// respondBadRequest answers a request body that could not be bound
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      err.Error(),
		"request_id": c.GetString("request_id"),
	})
}

// respondError maps a generation error to its status code
func respondError(c *gin.Context, operation string, err error) {
	fields := logger.WithContext(c)
	fields["operation"] = operation

	status := http.StatusInternalServerError
	message := "Internal server error"
	if errors.Is(err, services.ErrGenerationFailed) {
		status = http.StatusBadGateway
		message = err.Error()
	}

	logger.Error("Generation request failed", err, fields)
	c.JSON(status, gin.H{
		"error":      message,
		"request_id": c.GetString("request_id"),
	})
}
