// Package assistant runs the tool-calling loop behind /chat.
//
// An Agent pairs a chat model with a Toolbox. Run sends the user message,
// executes every tool call the model asks for, feeds the results back, and
// stops at the first reply that asks for no tools.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/registry/internal/lib/llm"
	"github.com/rs/zerolog"
)

// DefaultSystemPrompt is used when no prompt is configured.
const DefaultSystemPrompt = `You are an assistant that helps users look up athlete and medical supply records.
Use the provided tools to query, create, update or delete records, and answer from the tool results only.
Notes:
1. If the query conditions cannot be satisfied, reply exactly: Unable to satisfy the query conditions
2. If the question is unrelated to athletes or medical supplies, reply exactly: Sorry, only athlete and medical supply queries are supported`

// DefaultMaxSteps bounds the number of model turns in one run.
const DefaultMaxSteps = 25

// ErrStepLimit is returned when the model is still calling tools after the
// last allowed turn.
var ErrStepLimit = errors.New("assistant exceeded the step limit")

// ToolResult is the text output of one tool call. IsError marks an
// application error, which is shown to the model rather than failing the
// run.
type ToolResult struct {
	Text    string
	IsError bool
}

// Toolbox lists tools and executes them.
type Toolbox interface {
	Tools() []llm.ToolDefinition
	Call(ctx context.Context, name string, arguments []byte) (ToolResult, error)
	Close() error
}

type Agent struct {
	model    llm.ChatModel
	tools    Toolbox
	system   string
	maxSteps int
}

type Option func(*Agent)

func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		if prompt != "" {
			a.system = prompt
		}
	}
}

func WithMaxSteps(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxSteps = n
		}
	}
}

func NewAgent(model llm.ChatModel, tools Toolbox, opts ...Option) *Agent {
	a := &Agent{
		model:    model,
		tools:    tools,
		system:   DefaultSystemPrompt,
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run answers message. Model and transport failures end the run; tool
// errors go back to the model as tool output.
func (a *Agent) Run(ctx context.Context, message string) (string, error) {
	log := zerolog.Ctx(ctx)

	defs := a.tools.Tools()
	messages := []llm.Message{{Role: llm.RoleUser, Content: message}}

	for step := 1; step <= a.maxSteps; step++ {
		reply, err := a.model.Generate(ctx, llm.Request{
			System:   a.system,
			Messages: messages,
			Tools:    defs,
		})
		if err != nil {
			return "", fmt.Errorf("model request failed: %w", err)
		}
		messages = append(messages, reply)

		if len(reply.ToolCalls) == 0 {
			log.Debug().Int("steps", step).Msg("assistant finished")
			return StripThinking(reply.Content), nil
		}

		for _, call := range reply.ToolCalls {
			result, err := a.tools.Call(ctx, call.Name, call.Arguments)
			if err != nil {
				return "", fmt.Errorf("tool %s failed: %w", call.Name, err)
			}

			log.Debug().
				Int("step", step).
				Str("tool", call.Name).
				Bool("tool_error", result.IsError).
				Msg("assistant called tool")

			content := result.Text
			if result.IsError {
				content = "Error: " + content
			}
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    content,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}

	return "", fmt.Errorf("%w (%d)", ErrStepLimit, a.maxSteps)
}

var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThinking removes the <think>...</think> reasoning blocks some models
// emit before their answer.
func StripThinking(s string) string {
	return strings.TrimSpace(thinkBlock.ReplaceAllString(s, ""))
}
