package domain

// Chat message roles for the OpenAI-compatible chat-completions protocol.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one message in a chat-completion request.
type ChatMessage struct {
	Role    string
	Content string
}

// SystemMessage builds a system-role chat message.
func SystemMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role chat message.
func UserMessage(content string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: content}
}
