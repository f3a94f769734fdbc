package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader is the correlation header. It is read from the incoming
	// request (so a proxy or a client can choose the id) and always written
	// back on the response.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the Echo context key the id is stored under. The
	// request logger, the error handler and tracing all read it from there.
	RequestIDKey = "request_id"

	// maxRequestIDLength caps caller-supplied ids. Longer values are
	// replaced, since they end up in every log line of the request.
	maxRequestIDLength = 128
)

// RequestID gives every request a correlation id.
//
// Behavior:
//   - a caller-supplied X-Request-ID is kept when it is at most 128
//     printable ASCII characters
//   - otherwise (missing, too long, control characters) a random UUID is
//     generated instead
//   - the id is stored on the Echo context under RequestIDKey
//   - the id is echoed in the X-Request-ID response header, so a client can
//     quote it when reporting a failed athlete or supply request
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if !validRequestID(requestID) {
				requestID = uuid.NewString()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// GetRequestID returns the id RequestID stored on c.
//
// It returns "" when RequestID is not in the chain, which only happens in
// tests that build a bare Echo instance.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
