package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is. The API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource belongs to a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")
)
