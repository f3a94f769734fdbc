package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/registry/internal/server"
)

// TracingMiddleware owns the New Relic side of request handling.
//
// It needs:
//   - server: the environment name is attached to every transaction
//   - nrApp: the New Relic application, nil when no licence key is set
//
// Two layers are installed, in this order:
//  1. NewRelicMiddleware starts one transaction per request
//  2. EnhanceTracing decorates that transaction and records errors
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware returns nrecho's transaction middleware. Without an
// application it returns a pass-through, so the chain is the same shape in
// every environment and newrelic.FromContext simply yields nil.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing decorates the current transaction.
//
// Attributes added before the handler runs:
//   - client ip, user agent and the matched route template
//   - registry.resource: "athletes", "medical-supplies", "chat", "mcp", ...
//     taken from the first route segment, so transactions can be grouped
//     per record kind
//   - the request id and the environment name
//
// After the handler it notices the error (wrapped by nrpkgerrors for a
// stack trace) and sets the final status code, including the status the
// global error handler is about to write.
//
// It must run after NewRelicMiddleware; without a transaction it does
// nothing.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())
			txn.AddAttribute("http.route", c.Path())
			txn.AddAttribute("registry.resource", resourceOf(c.Path()))

			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}
			if tm.server != nil && tm.server.Config != nil {
				txn.AddAttribute("service.env", tm.server.Config.Primary.Env)
			}

			err := next(c)
			if err != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
			}

			txn.AddAttribute("http.status_code", responseStatus(err, c.Response().Status))

			return err
		}
	}
}

// resourceOf returns the first segment of a route template, or "root".
func resourceOf(route string) string {
	route = strings.TrimPrefix(route, "/")
	if i := strings.IndexByte(route, '/'); i >= 0 {
		route = route[:i]
	}
	if route == "" || route == "*" {
		return "root"
	}
	return route
}
