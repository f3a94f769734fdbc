package middleware

import (
	"time"

	"github.com/deppfellow/registry/internal/errs"
	"github.com/deppfellow/registry/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// limiterExpiry is how long an idle client's bucket is kept.
const limiterExpiry = 3 * time.Minute

// RateLimitMiddleware throttles the assistant route per client ip.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Chat limits /chat to assistant.rate_limit requests per second with bursts
// of assistant.rate_burst. A zero rate disables the limiter.
func (r *RateLimitMiddleware) Chat() echo.MiddlewareFunc {
	cfg := r.server.Config.Assistant
	if cfg.RateLimit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	retryAfter := time.Duration(float64(time.Second) / cfg.RateLimit)

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RateLimit),
			Burst:     burst,
			ExpiresIn: limiterExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Unable to identify client", false, nil, nil, nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("client", identifier).
				Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError(retryAfter)
		},
	})
}

// RecordRateLimitHit counts a rejected request in Prometheus and, when APM
// is enabled, as a New Relic custom event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.Metrics != nil {
		r.server.Metrics.RecordRateLimitHit()
	}

	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
