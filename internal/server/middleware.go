package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-leadform/internal/logging"
	"github.com/goliatone/go-leadform/pkg/interfaces"
)

// requestLogger attaches the request id to the context logging fields and
// logs one line per request.
func requestLogger(logger interfaces.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := middleware.GetReqID(ctx); id != "" {
				ctx = logging.ContextWithFields(ctx, map[string]any{"request_id": id})
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			logging.FromContext(ctx, logger).Debug("http.request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
