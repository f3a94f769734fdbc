package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deppfellow/registry/internal/lib/llm"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const clientName = "registry-assistant"

// MCPToolbox exposes the tools of an MCP server.
type MCPToolbox struct {
	client *client.Client
	tools  []llm.ToolDefinition
	known  map[string]bool
}

// Dial connects to the streamable HTTP MCP endpoint at url and lists its
// tools.
func Dial(ctx context.Context, url string) (*MCPToolbox, error) {
	c, err := client.NewStreamableHttpClient(url)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client for %s: %w", url, err)
	}

	box, err := NewMCPToolbox(ctx, c)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return box, nil
}

// NewMCPToolbox starts and initializes c, then discovers its tools.
func NewMCPToolbox(ctx context.Context, c *client.Client) (*MCPToolbox, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: clientName, Version: "1.0.0"}

	if _, err := c.Initialize(ctx, initReq); err != nil {
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	listed, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	box := &MCPToolbox{client: c, known: make(map[string]bool, len(listed.Tools))}
	for _, tool := range listed.Tools {
		def, err := toolDefinition(tool)
		if err != nil {
			return nil, err
		}
		box.tools = append(box.tools, def)
		box.known[tool.Name] = true
	}
	return box, nil
}

func toolDefinition(tool mcp.Tool) (llm.ToolDefinition, error) {
	schema := tool.RawInputSchema
	if len(schema) == 0 {
		raw, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return llm.ToolDefinition{}, fmt.Errorf("encoding schema of tool %s: %w", tool.Name, err)
		}
		schema = raw
	}

	return llm.ToolDefinition{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: schema,
	}, nil
}

func (b *MCPToolbox) Tools() []llm.ToolDefinition {
	return b.tools
}

// Call runs the named tool. Unknown tools and undecodable arguments are
// reported to the model as tool errors.
func (b *MCPToolbox) Call(ctx context.Context, name string, arguments []byte) (ToolResult, error) {
	if !b.known[name] {
		return ToolResult{Text: fmt.Sprintf("unknown tool %q", name), IsError: true}, nil
	}

	var args map[string]any
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return ToolResult{Text: fmt.Sprintf("arguments are not a JSON object: %v", err), IsError: true}, nil
		}
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := b.client.CallTool(ctx, req)
	if err != nil {
		return ToolResult{}, err
	}

	var text []string
	for _, content := range res.Content {
		if tc, ok := mcp.AsTextContent(content); ok {
			text = append(text, tc.Text)
		}
	}

	return ToolResult{Text: strings.Join(text, "\n"), IsError: res.IsError}, nil
}

func (b *MCPToolbox) Close() error {
	return b.client.Close()
}
