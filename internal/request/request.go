package request

import (
	"context"
	"net/http"
	"strings"
)

// UnknownClient is the rate-limit key used when no trusted client-IP header
// is present. All such requests share one counter.
const UnknownClient = "unknown"

type contextKey string

const requestIDContextKey contextKey = "request_id"

// ClientIP extracts the client IP from trusted proxy headers. It checks
// CF-Connecting-IP first (set by the edge), then X-Forwarded-For and
// X-Real-IP. RemoteAddr is deliberately not used: behind the edge it is the
// proxy's address, not the client's.
func ClientIP(r *http.Request) string {
	if cip := r.Header.Get("CF-Connecting-IP"); cip != "" {
		return strings.TrimSpace(cip)
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	return UnknownClient
}

// WithRequestID returns a context with the request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestID returns the request ID from the context, or "" if absent.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}
