package router

import (
	"net/http"

	"github.com/deppfellow/registry/internal/handler"
	"github.com/deppfellow/registry/internal/middleware"
	"github.com/deppfellow/registry/internal/toolserver"
	"github.com/labstack/echo/v4"
)

func registerAthleteRoutes(r *echo.Echo, h *handler.AthleteHandler) {
	g := r.Group("/athletes")

	g.POST("", handler.Handle(h.Handler, h.CreateAthlete, http.StatusCreated))
	g.GET("", handler.Handle(h.Handler, h.ListAthletes, http.StatusOK))
	g.POST("/search", handler.Handle(h.Handler, h.SearchAthletes, http.StatusOK))
	g.GET("/:id", handler.Handle(h.Handler, h.GetAthlete, http.StatusOK))
	g.PUT("/:id", handler.Handle(h.Handler, h.UpdateAthlete, http.StatusOK))
	g.DELETE("/:id", handler.Handle(h.Handler, h.DeleteAthlete, http.StatusOK))
}

func registerMedicalSupplyRoutes(r *echo.Echo, h *handler.MedicalSupplyHandler) {
	g := r.Group("/medical-supplies")

	g.POST("", handler.Handle(h.Handler, h.CreateMedicalSupply, http.StatusCreated))
	g.GET("", handler.Handle(h.Handler, h.ListMedicalSupplies, http.StatusOK))
	g.POST("/search", handler.Handle(h.Handler, h.SearchMedicalSupplies, http.StatusOK))
	g.GET("/:id", handler.Handle(h.Handler, h.GetMedicalSupply, http.StatusOK))
	g.PUT("/:id", handler.Handle(h.Handler, h.UpdateMedicalSupply, http.StatusOK))
	g.DELETE("/:id", handler.Handle(h.Handler, h.DeleteMedicalSupply, http.StatusOK))
}

// registerAssistantRoutes mounts the rate-limited chat route and the MCP
// endpoint the assistant discovers its tools from.
func registerAssistantRoutes(r *echo.Echo, h *handler.ChatHandler, limits *middleware.RateLimitMiddleware, tools *toolserver.ToolServer) {
	r.GET("/chat", handler.Handle(h.Handler, h.Chat, http.StatusOK), limits.Chat())

	mcp := echo.WrapHandler(tools.Handler())
	r.Match([]string{http.MethodGet, http.MethodPost, http.MethodDelete}, "/mcp", mcp)
}
