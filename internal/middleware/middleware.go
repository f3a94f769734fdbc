// Package middleware holds the global and route-specific Echo middleware:
// request ids, the request-scoped logger, New Relic tracing, Prometheus
// request metrics, the chat rate limiter, and the global error handler.
package middleware
