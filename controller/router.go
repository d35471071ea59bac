package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/enfluent/autograde/models"
)

const (
	serviceName    = "auto-grade"
	serviceVersion = "1.0.0"
	maxBodyBytes   = 1 << 20
)

// RouterConfig carries what the router needs besides the controllers.
type RouterConfig struct {
	AllowOrigins []string
	Logger       *slog.Logger
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(cfg RouterConfig, grading *GradingController, chatbot *ChatbotController) *gin.Engine {
	UseJSONFieldNames()

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		RequestID(),
		Logging(cfg.Logger),
		Recovery(cfg.Logger),
		corsMiddleware(cfg.AllowOrigins),
		LimitBody(maxBodyBytes),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
			"version": serviceVersion,
		})
	})

	router.POST("/auto-grade", grading.AutoGrade)
	router.POST("/chatbot", chatbot.Chat)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: "Not Found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{Detail: "Method Not Allowed"})
	})

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
