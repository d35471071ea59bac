package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enfluent/autograde/models"
	"github.com/enfluent/autograde/services"
)

// ChatbotController serves POST /chatbot.
type ChatbotController struct {
	chatbotService services.ChatbotService
	logger         *slog.Logger
}

// NewChatbotController is a constructor function for ChatbotController.
func NewChatbotController(service services.ChatbotService, logger *slog.Logger) *ChatbotController {
	return &ChatbotController{
		chatbotService: service,
		logger:         logger,
	}
}

// Chat validates the conversation and returns the tutor reply with the fixed references.
func (c *ChatbotController) Chat(ctx *gin.Context) {
	var req models.ChatBotRequest
	if !bindJSON(ctx, c.logger, &req) {
		return
	}

	response, err := c.chatbotService.Reply(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
