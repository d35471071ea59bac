package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/enfluent/autograde/config"
	"github.com/enfluent/autograde/models"
)

// LangChainCompleter adapts any langchaingo model to ChatCompleter.
type LangChainCompleter struct {
	model llms.Model
	opts  []llms.CallOption
}

var _ ChatCompleter = (*LangChainCompleter)(nil)

// NewLangChainCompleter wraps model; opts are applied to every call.
func NewLangChainCompleter(model llms.Model, opts ...llms.CallOption) *LangChainCompleter {
	return &LangChainCompleter{model: model, opts: opts}
}

// NewAzureCompleter talks to an Azure OpenAI chat deployment. The deployment
// name doubles as the model because Azure routes by deployment.
func NewAzureCompleter(cfg *config.Config, httpClient *http.Client) (*LangChainCompleter, error) {
	llm, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithToken(cfg.LLM.APIKey),
		openai.WithBaseURL(cfg.LLM.Endpoint),
		openai.WithModel(cfg.LLM.DeploymentName),
		openai.WithAPIVersion(cfg.LLM.APIVersion),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure openai client: %w", err)
	}
	return NewLangChainCompleter(llm, llms.WithTemperature(cfg.LLM.Temperature)), nil
}

// NewOpenAICompleter talks to OpenAI or any OpenAI-compatible server
// (vLLM, LM Studio, Ollama) when ENDPOINT is set.
func NewOpenAICompleter(cfg *config.Config, httpClient *http.Client) (*LangChainCompleter, error) {
	opts := []openai.Option{
		openai.WithToken(cfg.LLM.APIKey),
		openai.WithModel(cfg.LLM.DeploymentName),
		openai.WithHTTPClient(httpClient),
	}
	if cfg.LLM.Endpoint != "" {
		opts = append(opts, openai.WithBaseURL(cfg.LLM.Endpoint))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	return NewLangChainCompleter(llm, llms.WithTemperature(cfg.LLM.Temperature)), nil
}

// Complete sends messages in order and returns the first choice.
func (l *LangChainCompleter) Complete(ctx context.Context, messages []models.ChatMessage) (*models.ChatMessage, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, llms.TextParts(messageType(m.Role), m.Content))
	}

	resp, err := l.model.GenerateContent(ctx, content, l.opts...)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, nil
	}
	return &models.ChatMessage{Role: models.RoleAssistant, Content: resp.Choices[0].Content}, nil
}

func messageType(role string) llms.ChatMessageType {
	switch role {
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}
