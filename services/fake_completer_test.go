package services

import (
	"context"
	"sync"

	"github.com/enfluent/autograde/models"
)

// fakeCompleter returns a canned reply and records what it was sent.
type fakeCompleter struct {
	mu       sync.Mutex
	reply    *models.ChatMessage
	err      error
	calls    int
	messages []models.ChatMessage
	deadline bool
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []models.ChatMessage) (*models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.messages = messages
	_, f.deadline = ctx.Deadline()
	return f.reply, f.err
}

func assistant(content string) *models.ChatMessage {
	return &models.ChatMessage{Role: models.RoleAssistant, Content: content}
}

func ptr[T any](v T) *T {
	return &v
}
