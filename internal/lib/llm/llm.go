// Package llm is a provider-neutral chat model with tool calling.
//
// Backends translate Request into their own wire format and the model's
// reply back into a Message, so the assistant loop never sees provider
// types.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/registry/internal/config"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolDefinition describes a tool the model may call. InputSchema is a JSON
// Schema object.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
}

// ToolCall is one tool invocation requested by the model. Arguments is a
// JSON object.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Message is one turn of the conversation.
//
// Assistant messages may carry ToolCalls. Tool messages answer exactly one
// call, identified by ToolCallID and ToolName.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	ToolName   string
}

type Request struct {
	System   string
	Messages []Message
	Tools    []ToolDefinition
}

// ChatModel produces the next assistant message for a conversation.
type ChatModel interface {
	Generate(ctx context.Context, req Request) (Message, error)
}

// New builds the backend selected by cfg.Provider.
func New(ctx context.Context, cfg config.AssistantConfig) (ChatModel, error) {
	switch Provider(cfg.Provider) {
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported model provider %q", cfg.Provider)
	}
}
