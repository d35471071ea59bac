package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/enfluent/autograde/config"
	"github.com/enfluent/autograde/models"
)

// ChatCompleter sends an ordered list of chat messages to a hosted model and
// returns the single assistant reply. A nil message with a nil error means the
// provider answered without any content. Implementations must be safe for
// concurrent use.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (*models.ChatMessage, error)
}

// NewChatCompleter builds the completer selected by cfg.LLM.Provider.
func NewChatCompleter(ctx context.Context, cfg *config.Config, httpClient *http.Client) (ChatCompleter, error) {
	switch cfg.LLM.Provider {
	case config.ProviderAzure:
		return NewAzureCompleter(cfg, httpClient)
	case config.ProviderOpenAI:
		return NewOpenAICompleter(cfg, httpClient)
	case config.ProviderGemini:
		return NewGeminiCompleter(ctx, cfg, httpClient)
	default:
		return nil, fmt.Errorf("unknown chat completion provider %q", cfg.LLM.Provider)
	}
}
