// Package router builds the Echo instance: global middleware, the route
// groups per record kind, the assistant and MCP endpoints, and the system
// routes.
package router

import (
	"github.com/deppfellow/registry/internal/handler"
	"github.com/deppfellow/registry/internal/middleware"
	"github.com/deppfellow/registry/internal/server"
	"github.com/deppfellow/registry/internal/toolserver"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, tools *toolserver.ToolServer) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Trailing slashes are optional everywhere.
	router.Pre(middlewares.Global.RemoveTrailingSlash())

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Observe(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)
	registerAthleteRoutes(router, h.Athlete)
	registerMedicalSupplyRoutes(router, h.MedicalSupply)
	registerAssistantRoutes(router, h.Chat, middlewares.RateLimit, tools)

	return router
}
