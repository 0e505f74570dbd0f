package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testAllowedOrigin = "https://benvon.github.io"

func TestCORSPolicyHeaders(t *testing.T) {
	t.Parallel()

	policy := CORSPolicy{AllowedOrigin: testAllowedOrigin, AllowDevOrigins: true}

	tests := []struct {
		name            string
		origin          string
		wantAllowOrigin string
	}{
		{
			name:            "configured origin echoed",
			origin:          testAllowedOrigin,
			wantAllowOrigin: testAllowedOrigin,
		},
		{
			name:            "local dev origin echoed",
			origin:          "http://localhost:5500",
			wantAllowOrigin: "http://localhost:5500",
		},
		{
			name:            "loopback origin echoed regardless of port",
			origin:          "http://127.0.0.1:8081",
			wantAllowOrigin: "http://127.0.0.1:8081",
		},
		{
			name:            "foreign origin gets configured origin back",
			origin:          "https://evil.example",
			wantAllowOrigin: testAllowedOrigin,
		},
		{
			name:            "empty origin gets configured origin back",
			origin:          "",
			wantAllowOrigin: testAllowedOrigin,
		},
		{
			name:            "https loopback is not the allowed prefix",
			origin:          "https://127.0.0.1:8081",
			wantAllowOrigin: testAllowedOrigin,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			headers := policy.Headers(tt.origin)
			if got := headers["Access-Control-Allow-Origin"]; got != tt.wantAllowOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllowOrigin)
			}
			if got := headers["Access-Control-Allow-Methods"]; got != "POST, OPTIONS" {
				t.Errorf("Allow-Methods = %q, want %q", got, "POST, OPTIONS")
			}
			if got := headers["Access-Control-Allow-Headers"]; got != "Content-Type" {
				t.Errorf("Allow-Headers = %q, want %q", got, "Content-Type")
			}
			if got := headers["Access-Control-Max-Age"]; got != "86400" {
				t.Errorf("Max-Age = %q, want %q", got, "86400")
			}
		})
	}
}

func TestCORSPolicyDevOriginsDisabled(t *testing.T) {
	t.Parallel()

	policy := CORSPolicy{AllowedOrigin: testAllowedOrigin, AllowDevOrigins: false}

	for _, origin := range []string{"http://localhost:5500", "http://127.0.0.1:3000"} {
		headers := policy.Headers(origin)
		if got := headers["Access-Control-Allow-Origin"]; got != testAllowedOrigin {
			t.Errorf("With dev origins disabled, %q should be denied; Allow-Origin = %q", origin, got)
		}
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	t.Parallel()

	handler := CORS(CORSPolicy{AllowedOrigin: testAllowedOrigin, AllowDevOrigins: true})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("Preflight should not reach the next handler")
		}),
	)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", testAllowedOrigin)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty preflight body, got %q", w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != testAllowedOrigin {
		t.Errorf("Allow-Origin = %q, want %q", got, testAllowedOrigin)
	}
}

func TestCORSMiddlewareStampsAllResponses(t *testing.T) {
	t.Parallel()

	handler := CORS(CORSPolicy{AllowedOrigin: testAllowedOrigin})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != testAllowedOrigin {
		t.Errorf("Error responses must carry the CORS decision; Allow-Origin = %q", got)
	}
}
