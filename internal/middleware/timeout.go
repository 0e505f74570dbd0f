package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds the whole request, including the upstream call
const DefaultRequestTimeout = 30 * time.Second

// Timeout creates a middleware that enforces a deadline on request handlers.
// The deadline propagates through the request context to the outbound call.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
