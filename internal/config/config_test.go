package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.AllowedOrigin != "https://benvon.github.io" {
		t.Errorf("Expected default allowed origin, got %s", cfg.AllowedOrigin)
	}
	if !cfg.AllowDevOrigins {
		t.Error("Expected dev origins to be allowed by default")
	}
	if cfg.RateLimitMax != 15 {
		t.Errorf("Expected default rate limit 15, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != 60*time.Second {
		t.Errorf("Expected default rate window 60s, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitStore != RateLimitStoreMemory {
		t.Errorf("Expected default store %q, got %q", RateLimitStoreMemory, cfg.RateLimitStore)
	}
	if cfg.UpstreamTimeout != 30*time.Second {
		t.Errorf("Expected default upstream timeout 30s, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGIN", "https://example.com")
	t.Setenv("ALLOW_DEV_ORIGINS", "false")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("RATE_LIMIT_MAX", "30")
	t.Setenv("RATE_LIMIT_WINDOW", "2m")
	t.Setenv("UPSTREAM_TIMEOUT", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.ServerPort)
	}
	if cfg.AllowedOrigin != "https://example.com" {
		t.Errorf("Expected allowed origin override, got %s", cfg.AllowedOrigin)
	}
	if cfg.AllowDevOrigins {
		t.Error("Expected dev origins to be disabled")
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("Expected API key override, got %s", cfg.GeminiAPIKey)
	}
	if cfg.RateLimitMax != 30 {
		t.Errorf("Expected rate limit 30, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != 2*time.Minute {
		t.Errorf("Expected rate window 2m, got %s", cfg.RateLimitWindow)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Errorf("Expected upstream timeout 10s, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("RATE_LIMIT_STORE", "etcd")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for unknown rate limit store")
	}
}

func TestLoadRejectsNonPositiveLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for zero rate limit")
	}
}
