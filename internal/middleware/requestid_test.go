package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benvon/chat-relay/internal/request"
)

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = request.RequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/api/chat", nil))

	if seen == "" {
		t.Error("Expected a generated request ID in the context")
	}
	if got := w.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("Response header %q does not match context ID %q", got, seen)
	}
}

func TestRequestIDHonorsCallerSupplied(t *testing.T) {
	t.Parallel()

	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := request.RequestID(r.Context()); got != "caller-id" {
			t.Errorf("Expected caller-supplied ID, got %q", got)
		}
	}))

	req := httptest.NewRequest("POST", "/api/chat", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
