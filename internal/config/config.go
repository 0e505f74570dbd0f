package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Rate limit store kinds accepted by RATE_LIMIT_STORE.
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreUlule  = "ulule"
	RateLimitStoreRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	AllowedOrigin   string
	AllowDevOrigins bool
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	UpstreamTimeout time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
	RateLimitStore  string
	RedisURL        string
	EnableHSTS      bool
	ServerDebugMode bool
	OTELEnabled     bool
	OTELEndpoint    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "https://benvon.github.io"),
		AllowDevOrigins: getEnvBool("ALLOW_DEV_ORIGINS", true),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 15),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", 60*time.Second),
		RateLimitStore:  getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	switch cfg.RateLimitStore {
	case RateLimitStoreMemory, RateLimitStoreUlule, RateLimitStoreRedis:
	default:
		return nil, fmt.Errorf("RATE_LIMIT_STORE must be one of %q, %q, %q (got %q)",
			RateLimitStoreMemory, RateLimitStoreUlule, RateLimitStoreRedis, cfg.RateLimitStore)
	}

	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive (got %d)", cfg.RateLimitMax)
	}

	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive (got %s)", cfg.RateLimitWindow)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
