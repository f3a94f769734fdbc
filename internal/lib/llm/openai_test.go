package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/registry/internal/config"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, reply string, seen *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer ollama", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAI_GenerateToolCall(t *testing.T) {
	var seen openai.ChatCompletionRequest
	srv := newOpenAIServer(t, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{
			"index": 0,
			"finish_reason": "tool_calls",
			"message": {
				"role": "assistant",
				"content": "",
				"tool_calls": [{"id": "call_1", "type": "function", "function": {"name": "get_athlete", "arguments": "{\"id\":3}"}}]
			}
		}]
	}`, &seen)

	model, err := New(context.Background(), config.AssistantConfig{
		Provider:    "openai",
		Model:       "qwen3:4b",
		BaseURL:     srv.URL + "/v1",
		APIKey:      "ollama",
		Temperature: 0.7,
	})
	require.NoError(t, err)

	msg, err := model.Generate(context.Background(), Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "who is athlete 3?"}},
		Tools: []ToolDefinition{{
			Name:        "get_athlete",
			Description: "Get one athlete",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"id":{"type":"number"}}}`),
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, RoleAssistant, msg.Role)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "call_1", msg.ToolCalls[0].ID)
	assert.Equal(t, "get_athlete", msg.ToolCalls[0].Name)
	assert.JSONEq(t, `{"id":3}`, string(msg.ToolCalls[0].Arguments))

	assert.Equal(t, "qwen3:4b", seen.Model)
	require.Len(t, seen.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, seen.Messages[0].Role)
	assert.Equal(t, "be brief", seen.Messages[0].Content)
	require.Len(t, seen.Tools, 1)
	assert.Equal(t, "get_athlete", seen.Tools[0].Function.Name)
}

func TestOpenAI_ZeroTemperatureIsSent(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	model := NewOpenAI(config.AssistantConfig{Model: "m", BaseURL: srv.URL, APIKey: "k", Temperature: 0})
	msg, err := model.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Content)

	require.Contains(t, body, "temperature")
	assert.InDelta(t, 0, body["temperature"], 1e-6)
}

func TestRequestTemperature(t *testing.T) {
	assert.Equal(t, float32(0.7), requestTemperature(0.7))
	assert.Greater(t, requestTemperature(0), float32(0))
}

func TestOpenAI_GenerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"model not loaded"}}`))
	}))
	defer srv.Close()

	model := NewOpenAI(config.AssistantConfig{Model: "m", BaseURL: srv.URL, APIKey: "k"})
	_, err := model.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	assert.ErrorContains(t, err, "model not loaded")
}

func TestToOpenAIMessages_ToolRound(t *testing.T) {
	out := toOpenAIMessages(Request{Messages: []Message{
		{Role: RoleUser, Content: "list"},
		{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c1", Name: "list_athletes", Arguments: json.RawMessage(`{}`)}}},
		{Role: RoleTool, Content: "[]", ToolCallID: "c1", ToolName: "list_athletes"},
	}})

	require.Len(t, out, 3)
	assert.Equal(t, openai.ChatMessageRoleUser, out[0].Role)
	require.Len(t, out[1].ToolCalls, 1)
	assert.Equal(t, "list_athletes", out[1].ToolCalls[0].Function.Name)
	assert.Equal(t, openai.ChatMessageRoleTool, out[2].Role)
	assert.Equal(t, "c1", out[2].ToolCallID)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.AssistantConfig{Provider: "bard"})
	assert.ErrorContains(t, err, "bard")
}
