package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// DefaultMaxRequestSize is the default maximum request body size (1MB).
// Chat payloads are small; anything larger is abuse.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize limits the size of request bodies
func MaxRequestSize(maxBytes int64, logger *zap.Logger) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				respondErrorJSON(w, http.StatusRequestEntityTooLarge, "Request body too large", logger)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
