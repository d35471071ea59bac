package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/enfluent/autograde/models"
)

// References returns the advisory list sent with every chatbot reply. It is
// fixed and does not depend on the reply.
func References() []models.Reference {
	return []models.Reference{
		{
			Title:   "English Grammar Guide",
			Content: "Provides detailed rules and examples on the usage of grammar structures.",
		},
		{
			Title:   "Vocabulary Builder",
			Content: "A guide to improve vocabulary with examples and synonyms.",
		},
	}
}

// ChatbotService answers a learner's latest message as an English tutor.
type ChatbotService interface {
	Reply(ctx context.Context, req models.ChatBotRequest) (*models.ChatBotResponse, error)
}

type chatbotServiceImpl struct {
	completer ChatCompleter
	prompts   *PromptBuilder
	timeout   time.Duration
	logger    *slog.Logger
}

// NewChatbotService is a constructor function for ChatbotService.
func NewChatbotService(completer ChatCompleter, prompts *PromptBuilder, timeout time.Duration, logger *slog.Logger) ChatbotService {
	return &chatbotServiceImpl{
		completer: completer,
		prompts:   prompts,
		timeout:   timeout,
		logger:    logger,
	}
}

// Reply uses only the last conversation turn; earlier turns are not threaded.
func (s *chatbotServiceImpl) Reply(ctx context.Context, req models.ChatBotRequest) (*models.ChatBotResponse, error) {
	log := requestLogger(ctx, s.logger)
	log.Info("chatbot request accepted", "turns", len(req.Conversation))

	messages, err := s.prompts.TutorMessages(req.LastContent())
	if err != nil {
		log.Error("failed to build tutor prompt", "error", err)
		return nil, err
	}

	reply, err := complete(ctx, s.completer, messages, s.timeout)
	if err != nil {
		log.Error("chat completion failed", "error", err)
		return nil, err
	}

	content := ParseChatbot(reply)
	log.Info("chatbot reply ready", "length", len(content))
	return &models.ChatBotResponse{
		Response:   models.ChatMessage{Role: models.RoleAssistant, Content: content},
		References: References(),
	}, nil
}
