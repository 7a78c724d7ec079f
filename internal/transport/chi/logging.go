package chi

import (
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vectorgate/internal/logger"
)

// RequestLoggerMiddleware attaches a request-scoped logger (tagged with the
// chi request ID) to the context and logs each request on completion.
// Handlers retrieve it with logger.FromContext.
func RequestLoggerMiddleware(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := base
			if reqID := chiMiddleware.GetReqID(r.Context()); reqID != "" {
				reqLogger = base.With(zap.String("request_id", reqID))
			}
			ctx := logger.ContextWithLogger(r.Context(), reqLogger)

			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("Request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
