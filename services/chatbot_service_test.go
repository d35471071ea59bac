package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enfluent/autograde/models"
)

func TestChatbotReply(t *testing.T) {
	content := "'Elaborate' means to explain in detail..."
	fake := &fakeCompleter{reply: assistant(content)}
	svc := NewChatbotService(fake, NewPromptBuilder(), time.Minute, discardLogger())

	resp, err := svc.Reply(context.Background(), models.ChatBotRequest{
		Collections: []string{},
		Conversation: []models.ConversationTurn{
			{Role: "user", Content: "Hi!"},
			{Role: "assistant", Content: "Hello, how can I help?"},
			{Role: "user", Content: "How do I use 'elaborate'?"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.ChatMessage{Role: "assistant", Content: content}, resp.Response)
	assert.Equal(t, References(), resp.References)
	require.Len(t, resp.References, 2)
	assert.Equal(t, "English Grammar Guide", resp.References[0].Title)
	assert.Equal(t, "Vocabulary Builder", resp.References[1].Title)

	require.Len(t, fake.messages, 1)
	prompt := fake.messages[0].Content
	assert.Contains(t, prompt, `"How do I use 'elaborate'?"`)
	assert.NotContains(t, prompt, "Hello, how can I help?")
}

func TestChatbotReplyWithoutContent(t *testing.T) {
	svc := NewChatbotService(&fakeCompleter{}, NewPromptBuilder(), time.Minute, discardLogger())

	resp, err := svc.Reply(context.Background(), models.ChatBotRequest{
		Conversation: []models.ConversationTurn{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)
	assert.Equal(t, NoChatbotContent, resp.Response.Content)
}

func TestChatbotUpstreamFailure(t *testing.T) {
	svc := NewChatbotService(&fakeCompleter{err: errors.New("quota exceeded")}, NewPromptBuilder(), time.Minute, discardLogger())

	_, err := svc.Reply(context.Background(), models.ChatBotRequest{
		Conversation: []models.ConversationTurn{{Role: "user", Content: "hello"}},
	})
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "quota exceeded", err.Error())
}
