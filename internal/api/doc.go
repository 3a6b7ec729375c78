// Package api is the HTTP transport for the storefront. It decodes and
// validates requests, calls the user and product services, and maps their
// errors onto status codes and a uniform JSON error envelope.
package api
