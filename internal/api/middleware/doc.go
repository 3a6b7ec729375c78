// Package middleware contains the HTTP middleware for tracing and bearer
// token authentication.
package middleware
