package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/enfluent/autograde/config"
	"github.com/enfluent/autograde/models"
)

// GeminiCompleter sends chat messages to Google Gemini. System messages are
// folded into the system instruction; assistant turns use the "model" role.
type GeminiCompleter struct {
	client      *genai.Client
	model       string
	temperature float32
}

var _ ChatCompleter = (*GeminiCompleter)(nil)

// NewGeminiCompleter creates a Gemini API client. ENDPOINT, when set, replaces the base URL.
func NewGeminiCompleter(ctx context.Context, cfg *config.Config, httpClient *http.Client) (*GeminiCompleter, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.LLM.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.LLM.Endpoint != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.LLM.Endpoint
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiCompleter{
		client:      client,
		model:       cfg.LLM.GeminiModel,
		temperature: float32(cfg.LLM.Temperature),
	}, nil
}

// Complete returns the text of the first candidate, skipping thought parts.
func (g *GeminiCompleter) Complete(ctx context.Context, messages []models.ChatMessage) (*models.ChatMessage, error) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			system = append(system, m.Content)
		case models.RoleAssistant:
			contents = append(contents, textContent(string(genai.RoleModel), m.Content))
		default:
			contents = append(contents, textContent(string(genai.RoleUser), m.Content))
		}
	}

	temperature := g.temperature
	genCfg := &genai.GenerateContentConfig{Temperature: &temperature}
	if len(system) > 0 {
		genCfg.SystemInstruction = textContent("", strings.Join(system, "\n\n"))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, genCfg)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, nil
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && p.Text != "" && !p.Thought {
			text.WriteString(p.Text)
		}
	}
	return &models.ChatMessage{Role: models.RoleAssistant, Content: text.String()}, nil
}

func textContent(role, text string) *genai.Content {
	return &genai.Content{Role: role, Parts: []*genai.Part{{Text: text}}}
}
