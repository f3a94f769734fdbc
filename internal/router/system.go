package router

import (
	"github.com/deppfellow/registry/internal/handler"
	"github.com/deppfellow/registry/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the endpoints outside the registry API:
// health, metrics and the static front end.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	if s.Metrics != nil {
		r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}

	r.GET("/", h.Static.ServeIndex)
	r.GET("/favicon.ico", h.Static.Favicon)
	r.Static("/static", h.Static.Dir())
}
