package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enfluent/autograde/models"
	"github.com/enfluent/autograde/services"
)

const internalErrorDetail = "Internal server error"

// bindJSON decodes the body into dst and answers 413/422 on failure.
// It returns false when the caller should stop.
func bindJSON(c *gin.Context, logger *slog.Logger, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Detail: "request body too large"})
		return false
	}

	requestLog(c, logger).Error("request validation failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Detail: fieldErrors(err)})
	return false
}

// respondError maps a pipeline failure to a 500 body. Upstream and parse
// failures carry their own message; anything else gets a generic one.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var upstream *services.UpstreamError
	var parseErr *services.ParseError

	switch {
	case errors.As(err, &upstream):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: upstream.Error()})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: parseErr.Error()})
	default:
		requestLog(c, logger).Error("unexpected error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: internalErrorDetail})
	}
}
