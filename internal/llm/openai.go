package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is the model used for planning when none is configured.
const DefaultModel = "gpt-4o"

// OpenAIClient talks to the OpenAI API or any endpoint speaking the same
// protocol.
type OpenAIClient struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenAIClient creates an OpenAI client. The API key comes from the
// OPENAI_API_KEY environment variable; baseURL is optional and overrides
// the public endpoint.
func NewOpenAIClient(model, baseURL string) (*OpenAIClient, error) {
	if model == "" {
		model = DefaultModel
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		model:   model,
		baseURL: baseURL,
	}, nil
}

// Chat sends the conversation and returns the raw reply.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatJSON sends the conversation and decodes the plan payload from the
// reply.
func (c *OpenAIClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	doc := extractJSON(content)
	if err := json.Unmarshal([]byte(doc), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, content)
	}
	return nil
}

// toOpenAIMessages converts the conversation for openai-go. Unknown roles
// degrade to user turns.
func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out[i] = openai.SystemMessage(msg.Content)
		case RoleAssistant:
			out[i] = openai.AssistantMessage(msg.Content)
		default:
			out[i] = openai.UserMessage(msg.Content)
		}
	}
	return out
}

// extractJSON pulls the JSON document out of a reply that may wrap it in
// markdown fences or surrounding prose.
func extractJSON(s string) string {
	for _, fence := range []string{"```json", "```"} {
		if body, ok := fencedBlock(s, fence); ok {
			return body
		}
	}
	if doc, ok := balancedJSON(s); ok {
		return doc
	}
	return s
}

// fencedBlock returns the body of the first fence-delimited block.
func fencedBlock(s, fence string) (string, bool) {
	start := strings.Index(s, fence)
	if start == -1 {
		return "", false
	}
	rest := s[start+len(fence):]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", false
	}
	return strings.Trim(rest[:end], "\r\n"), true
}

// balancedJSON returns the substring from the first brace or bracket to
// its matching close.
func balancedJSON(s string) (string, bool) {
	open := strings.IndexAny(s, "{[")
	if open == -1 {
		return "", false
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[open : i+1], true
			}
		}
	}
	return "", false
}
