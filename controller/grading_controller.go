package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enfluent/autograde/models"
	"github.com/enfluent/autograde/services"
)

// GradingController serves POST /auto-grade.
type GradingController struct {
	gradingService services.GradingService
	logger         *slog.Logger
}

// NewGradingController is a constructor function for GradingController.
func NewGradingController(service services.GradingService, logger *slog.Logger) *GradingController {
	return &GradingController{
		gradingService: service,
		logger:         logger,
	}
}

// AutoGrade validates the request, grades it and returns the normalized result.
// Invalid bodies never reach the chat model.
func (c *GradingController) AutoGrade(ctx *gin.Context) {
	var req models.GradingRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	response, err := c.gradingService.Grade(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
