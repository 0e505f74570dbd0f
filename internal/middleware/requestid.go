package middleware

import (
	"net/http"

	"github.com/benvon/chat-relay/internal/request"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on responses (and may be supplied
// by the caller on requests).
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a unique ID to each request, honoring one supplied by
// the caller, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(request.WithRequestID(r.Context(), id)))
	})
}
