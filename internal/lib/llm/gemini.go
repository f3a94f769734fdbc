package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/registry/internal/config"
	"google.golang.org/genai"
)

// Gemini talks to the Gemini API through the Google Gen AI SDK.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGemini(ctx context.Context, cfg config.AssistantConfig) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{client: client, model: cfg.Model, temperature: cfg.Temperature}, nil
}

func (g *Gemini) Generate(ctx context.Context, req Request) (Message, error) {
	contents, err := toGeminiContents(req.Messages)
	if err != nil {
		return Message{}, err
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}
	if req.System != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if len(req.Tools) > 0 {
		genCfg.Tools = []*genai.Tool{{FunctionDeclarations: toGeminiDeclarations(req.Tools)}}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, genCfg)
	if err != nil {
		return Message{}, fmt.Errorf("gemini generate content: %w", err)
	}

	return fromGeminiResponse(resp)
}

// toGeminiContents maps the conversation onto Gemini turns. Consecutive tool
// results are folded into one user turn, which is how Gemini expects the
// answers to a batch of function calls.
func toGeminiContents(messages []Message) ([]*genai.Content, error) {
	var contents []*genai.Content
	var pending []*genai.Part

	flush := func() {
		if len(pending) > 0 {
			contents = append(contents, genai.NewContentFromParts(pending, genai.RoleUser))
			pending = nil
		}
	}

	for _, m := range messages {
		switch m.Role {
		case RoleTool:
			pending = append(pending, genai.NewPartFromFunctionResponse(m.ToolName, map[string]any{"output": m.Content}))
		case RoleAssistant:
			flush()
			var parts []*genai.Part
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, call := range m.ToolCalls {
				var args map[string]any
				if len(call.Arguments) > 0 {
					if err := json.Unmarshal(call.Arguments, &args); err != nil {
						return nil, fmt.Errorf("decoding arguments of %s: %w", call.Name, err)
					}
				}
				parts = append(parts, genai.NewPartFromFunctionCall(call.Name, args))
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
		default:
			flush()
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	flush()

	return contents, nil
}

func toGeminiDeclarations(tools []ToolDefinition) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		out[i] = &genai.FunctionDeclaration{
			Name:                 t.Name,
			Description:          t.Description,
			ParametersJsonSchema: t.InputSchema,
		}
	}
	return out
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) (Message, error) {
	if len(resp.Candidates) == 0 {
		return Message{}, fmt.Errorf("gemini returned no candidates")
	}

	msg := Message{Role: RoleAssistant, Content: resp.Text()}
	for i, call := range resp.FunctionCalls() {
		args, err := json.Marshal(call.Args)
		if err != nil {
			return Message{}, fmt.Errorf("encoding arguments of %s: %w", call.Name, err)
		}
		if call.Args == nil {
			args = []byte("{}")
		}

		// Gemini leaves the id empty unless it batches calls.
		id := call.ID
		if id == "" {
			id = fmt.Sprintf("call_%d", i)
		}

		msg.ToolCalls = append(msg.ToolCalls, ToolCall{ID: id, Name: call.Name, Arguments: args})
	}
	return msg, nil
}
