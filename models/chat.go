package models

// Chat roles understood by every ChatCompleter.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single message exchanged with the chat-completion provider.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
