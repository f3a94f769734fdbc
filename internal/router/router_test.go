package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/registry/internal/config"
	"github.com/deppfellow/registry/internal/handler"
	"github.com/deppfellow/registry/internal/metrics"
	"github.com/deppfellow/registry/internal/server"
	"github.com/deppfellow/registry/internal/service"
	"github.com/deppfellow/registry/internal/toolserver"
	"github.com/labstack/echo/v4"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	log := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Server:        config.ServerConfig{CORSAllowedOrigins: []string{"*"}, StaticDir: t.TempDir()},
			Assistant:     config.AssistantConfig{RateLimit: 1, RateBurst: 1},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger:  &log,
		Metrics: metrics.New(),
	}

	services := &service.Services{
		Athlete:       service.NewAthleteService(nil),
		MedicalSupply: service.NewMedicalSupplyService(nil, nil),
		Assistant:     service.NewAssistantService(s.Config.Assistant, s.Metrics),
	}

	return NewRouter(s, handler.NewHandlers(s, services), toolserver.New(services, s.Metrics))
}

func TestNewRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /athletes",
		"GET /athletes",
		"POST /athletes/search",
		"GET /athletes/:id",
		"PUT /athletes/:id",
		"DELETE /athletes/:id",
		"POST /medical-supplies",
		"GET /medical-supplies",
		"POST /medical-supplies/search",
		"GET /medical-supplies/:id",
		"PUT /medical-supplies/:id",
		"DELETE /medical-supplies/:id",
		"GET /chat",
		"POST /mcp",
		"GET /status",
		"GET /metrics",
		"GET /",
		"GET /favicon.ico",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestRouter_SystemRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "registry_http_requests_total"))
}

func TestRouter_ChatValidationBeforeAssistant(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat/", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRouter_MCPEndpoint(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t))
	defer srv.Close()

	c, err := client.NewStreamableHttpClient(srv.URL + "/mcp")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "router-test", Version: "1.0.0"}
	info, err := c.Initialize(ctx, initReq)
	require.NoError(t, err)
	assert.Equal(t, toolserver.Name, info.ServerInfo.Name)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 12)
}
