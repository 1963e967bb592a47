// Package llm turns natural-language prompts into task plans. A Client
// abstracts a chat endpoint; Planner and Reviewer build the prompts and
// decode the JSON payloads the chart ingests.
package llm

import "context"

// Chat roles shared by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a planning conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system-role message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user-role message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Client is a chat endpoint capable of producing plan payloads.
type Client interface {
	// Chat sends the conversation and returns the raw reply.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends the conversation and decodes the reply into result.
	// Markdown fences or prose around the payload are stripped first.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}
