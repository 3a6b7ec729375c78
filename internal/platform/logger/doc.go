// Package logger sets up the JSON slog logger from server configuration and
// carries request-scoped loggers through context.Context.
package logger
