package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/deppfellow/registry/internal/middleware"
	"github.com/deppfellow/registry/internal/server"
	"github.com/labstack/echo/v4"
)

const defaultCheckTimeout = 5 * time.Second

// pinger checks one dependency.
type pinger func(ctx context.Context) error

// HealthHandler reports whether the service and its dependencies are up.
type HealthHandler struct {
	Handler
	checks  map[string]pinger
	timeout time.Duration
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	cfg := s.Config.Observability.HealthChecks
	checks := make(map[string]pinger)

	if cfg.Enabled {
		for _, name := range cfg.Checks {
			switch name {
			case "database":
				if s.DB != nil {
					checks[name] = s.DB.Pool.Ping
				}
			case "redis":
				if s.Redis != nil {
					checks[name] = func(ctx context.Context) error {
						return s.Redis.Ping(ctx).Err()
					}
				}
			}
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
		timeout: timeout,
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth pings every configured dependency and answers 200 when all
// respond, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
		checkStart := time.Now()
		err := h.checks[name](ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			response.Status = "unhealthy"
			response.Checks[name] = checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthEvent(name, elapsed, err)
			continue
		}

		response.Checks[name] = checkResult{Status: "healthy", ResponseTime: elapsed.String()}
	}

	if response.Status != "healthy" {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordHealthEvent(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
