package middleware

import (
	"net/http"
	"time"

	"github.com/zatekoja/hospitallocator/internal/infrastructure/observability"
)

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		event := observability.LoggerFromContext(r.Context()).Info()
		if rw.statusCode >= http.StatusInternalServerError {
			event = observability.LoggerFromContext(r.Context()).Warn()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.statusCode).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}
