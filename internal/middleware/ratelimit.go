package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/benvon/chat-relay/internal/metrics"
	"github.com/benvon/chat-relay/internal/ratelimit"
	"github.com/benvon/chat-relay/internal/request"
	"go.uber.org/zap"
)

// RateLimitExceededMessage is the client-facing 429 body text.
const RateLimitExceededMessage = "Too many requests. Please wait a moment."

// RateLimit creates rate limiting middleware over the given store, keyed by
// request.ClientIP. On store errors the request is allowed through (fail open
// for availability).
func RateLimit(store ratelimit.Store, limit int, window time.Duration, collector *metrics.Collector, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := request.ClientIP(r)

			allowed, err := store.Allow(r.Context(), clientID)
			if err != nil {
				logger.Warn("rate_limit_store_error",
					zap.Error(err),
					zap.String("request_id", request.RequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))

			if !allowed {
				if collector != nil {
					collector.RecordRateLimited()
				}
				logger.Info("request_rate_limited",
					zap.String("client_id", clientID),
					zap.String("request_id", request.RequestID(r.Context())),
				)
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				respondErrorJSON(w, http.StatusTooManyRequests, RateLimitExceededMessage, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
