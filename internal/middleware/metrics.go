package middleware

import (
	"net/http"
	"time"

	"github.com/benvon/chat-relay/internal/metrics"
)

// knownPaths are the routes this service serves. Anything else is collapsed
// into one label value so path scans cannot blow up metric cardinality.
var knownPaths = map[string]bool{
	"/api/chat": true,
	"/healthz":  true,
	"/version":  true,
	"/metrics":  true,
}

// Metrics creates middleware that records request counts and latency.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			path := r.URL.Path
			if !knownPaths[path] {
				path = "other"
			}
			collector.RecordRequest(r.Method, path, wrapped.statusCode, time.Since(start))
		})
	}
}
