// Package handler is the HTTP layer between the router and the services.
//
// Each endpoint is a typed function wrapped by Handle, which binds the
// request into its payload type, validates it, calls the service and writes
// the result. Errors are returned unchanged to the global error handler.
package handler
