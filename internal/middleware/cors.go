package middleware

import (
	"net/http"
	"strings"
)

const (
	// localDevOrigin is the Live Server origin used during frontend development
	localDevOrigin = "http://localhost:5500"
	// loopbackPrefix matches any loopback origin regardless of port
	loopbackPrefix = "http://127.0.0.1"

	corsAllowMethods = "POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
	corsMaxAge       = "86400"
)

// CORSPolicy decides which origins may read responses from this service.
type CORSPolicy struct {
	// AllowedOrigin is the production frontend origin.
	AllowedOrigin string
	// AllowDevOrigins additionally admits localDevOrigin and loopback origins.
	AllowDevOrigins bool
}

// originAllowed reports whether origin may be echoed back.
func (p CORSPolicy) originAllowed(origin string) bool {
	if origin == p.AllowedOrigin {
		return true
	}
	if p.AllowDevOrigins {
		return origin == localDevOrigin || strings.HasPrefix(origin, loopbackPrefix)
	}
	return false
}

// Headers computes the CORS response headers for a request origin. Allowed
// origins are echoed back; everything else gets the configured origin, which
// the browser will refuse to match (deny-by-mismatch rather than omitting the
// header). The method/headers/max-age metadata is fixed and emitted either way.
func (p CORSPolicy) Headers(origin string) map[string]string {
	allowOrigin := p.AllowedOrigin
	if p.originAllowed(origin) {
		allowOrigin = origin
	}
	return map[string]string{
		"Access-Control-Allow-Origin":  allowOrigin,
		"Access-Control-Allow-Methods": corsAllowMethods,
		"Access-Control-Allow-Headers": corsAllowHeaders,
		"Access-Control-Max-Age":       corsMaxAge,
	}
}

// CORS creates middleware that stamps the policy's headers on every response
// and terminates OPTIONS preflights with 204.
func CORS(policy CORSPolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for k, v := range policy.Headers(r.Header.Get("Origin")) {
				w.Header().Set(k, v)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
