package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/registry/internal/server"
	"github.com/labstack/echo/v4"
)

// StaticHandler serves the browser front end from server.static_dir.
type StaticHandler struct {
	Handler
	dir string
}

func NewStaticHandler(s *server.Server) *StaticHandler {
	return &StaticHandler{
		Handler: NewHandler(s),
		dir:     s.Config.Server.StaticDir,
	}
}

// Dir is the directory mounted at /static.
func (h *StaticHandler) Dir() string {
	return h.dir
}

// ServeIndex serves index.html uncached so a redeploy shows up on reload.
func (h *StaticHandler) ServeIndex(c echo.Context) error {
	page, err := os.ReadFile(filepath.Join(h.dir, "index.html"))
	if err != nil {
		return fmt.Errorf("failed to read index page: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}

// Favicon answers 204 so browsers stop asking.
func (h *StaticHandler) Favicon(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
