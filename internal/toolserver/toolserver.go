// Package toolserver publishes the registry operations as MCP tools.
//
// Tool arguments are decoded into the same request types the HTTP handlers
// bind, so validation and partial-update semantics are identical on both
// surfaces. Application errors come back as tool errors carrying the HTTP
// error message; the call itself only fails on encoding problems.
package toolserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/deppfellow/registry/internal/errs"
	"github.com/deppfellow/registry/internal/metrics"
	"github.com/deppfellow/registry/internal/service"
	"github.com/deppfellow/registry/internal/sqlerr"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

const (
	Name    = "registry"
	Version = "1.0.0"
)

type ToolServer struct {
	mcp      *server.MCPServer
	services *service.Services
	metrics  *metrics.Metrics
}

// New builds the MCP server and registers every tool. m may be nil.
func New(services *service.Services, m *metrics.Metrics) *ToolServer {
	t := &ToolServer{
		mcp: server.NewMCPServer(Name, Version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		services: services,
		metrics:  m,
	}

	t.registerAthleteTools()
	t.registerMedicalSupplyTools()
	return t
}

// MCPServer returns the underlying server, e.g. for an in-process client.
func (t *ToolServer) MCPServer() *server.MCPServer {
	return t.mcp
}

// Handler serves the tools over stateless streamable HTTP.
func (t *ToolServer) Handler() http.Handler {
	return server.NewStreamableHTTPServer(t.mcp, server.WithStateLess(true))
}

type toolFunc func(ctx context.Context, req mcp.CallToolRequest) (any, error)

func (t *ToolServer) add(tool mcp.Tool, fn toolFunc) {
	t.mcp.AddTool(tool, t.wrap(tool.Name, fn))
}

func (t *ToolServer) wrap(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := fn(ctx, req)
		if t.metrics != nil {
			t.metrics.RecordToolCall(name, err)
		}

		if err != nil {
			msg := errorMessage(err)
			zerolog.Ctx(ctx).Warn().
				Err(err).
				Str("tool", name).
				Msg("tool call failed")
			return mcp.NewToolResultError(msg), nil
		}

		body, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encoding %s result: %w", name, err)
		}
		return mcp.NewToolResultText(string(body)), nil
	}
}

// errorMessage renders err the way the HTTP API would report it.
func errorMessage(err error) string {
	var httpErr *errs.HTTPError
	if !errors.As(sqlerr.HandleError(err), &httpErr) {
		return "internal server error"
	}

	if len(httpErr.Errors) == 0 {
		return httpErr.Message
	}

	details := make([]string, len(httpErr.Errors))
	for i, fe := range httpErr.Errors {
		details[i] = fe.Field + ": " + fe.Error
	}
	return httpErr.Message + " (" + strings.Join(details, "; ") + ")"
}
