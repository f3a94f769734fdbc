// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler (or the tool server),
// performs business operations, and calls repository methods to interact
// with the data.
//
// Services never translate storage errors; the HTTP error handler and the
// tool server both run them through sqlerr.HandleError.
package service

import (
	"context"

	"github.com/rs/zerolog"
)

// logFor returns the request-scoped logger stored in ctx by the context
// enhancer middleware, or a disabled logger.
func logFor(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
