package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

// stubStore returns canned answers for Allow.
type stubStore struct {
	allowed bool
	err     error
	calls   int
	lastID  string
}

func (s *stubStore) Allow(_ context.Context, clientID string) (bool, error) {
	s.calls++
	s.lastID = clientID
	return s.allowed, s.err
}

func TestRateLimitAllows(t *testing.T) {
	t.Parallel()

	store := &stubStore{allowed: true}
	handler := RateLimit(store, 15, time.Minute, nil, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest("POST", "/api/chat", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.9")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if store.lastID != "203.0.113.9" {
		t.Errorf("Store keyed by %q, want client IP", store.lastID)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "15" {
		t.Errorf("X-RateLimit-Limit = %q, want 15", got)
	}
}

func TestRateLimitRejects(t *testing.T) {
	t.Parallel()

	store := &stubStore{allowed: false}
	handler := RateLimit(store, 15, time.Minute, nil, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Limited request should not reach the handler")
		}),
	)

	req := httptest.NewRequest("POST", "/api/chat", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want 60", got)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["error"] != RateLimitExceededMessage {
		t.Errorf("Body error = %q, want %q", body["error"], RateLimitExceededMessage)
	}
}

func TestRateLimitFailsOpenOnStoreError(t *testing.T) {
	t.Parallel()

	store := &stubStore{err: errors.New("redis down")}
	handler := RateLimit(store, 15, time.Minute, nil, zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest("POST", "/api/chat", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Store errors should fail open; got status %d", w.Code)
	}
}
