package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/storefront-api/internal/api/shared"
	"github.com/phrazzld/storefront-api/internal/platform/logger"
)

// TraceHeader echoes the trace ID back to the client.
const TraceHeader = "X-Trace-ID"

// TraceMiddleware adds a trace ID to the request context and to every log
// line written through logger.FromContext. It reuses chi's request ID when
// chimiddleware.RequestID runs earlier in the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.WithTraceID(r.Context(), chimiddleware.GetReqID(r.Context()))
		traceID := shared.GetTraceID(ctx)
		ctx = logger.WithRequestID(ctx, traceID)

		w.Header().Set(TraceHeader, traceID)

		logger.FromContext(ctx).Debug("request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
