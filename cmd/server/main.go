package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/chat-relay/internal/config"
	"github.com/benvon/chat-relay/internal/gemini"
	"github.com/benvon/chat-relay/internal/handlers"
	"github.com/benvon/chat-relay/internal/logger"
	"github.com/benvon/chat-relay/internal/metrics"
	"github.com/benvon/chat-relay/internal/middleware"
	"github.com/benvon/chat-relay/internal/ratelimit"
	"github.com/benvon/chat-relay/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug mode for upstream API logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	// Initialize logger
	zapLogger, err := logger.NewProductionLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("allowed_origin", cfg.AllowedOrigin),
		zap.Bool("allow_dev_origins", cfg.AllowDevOrigins),
		zap.String("gemini_model", cfg.GeminiModel),
		zap.String("rate_limit_store", cfg.RateLimitStore),
		zap.Int("rate_limit_max", cfg.RateLimitMax),
		zap.Duration("rate_limit_window", cfg.RateLimitWindow),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "chat-relay", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	collector := metrics.NewCollector()

	// Background goroutines (janitor) stop on shutdown.
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	// Build the rate limit store
	var store ratelimit.Store
	switch cfg.RateLimitStore {
	case config.RateLimitStoreMemory:
		memStore := ratelimit.NewMemoryStore(cfg.RateLimitMax, cfg.RateLimitWindow)
		go memStore.StartJanitor(bgCtx, ratelimit.DefaultSweepInterval)
		store = memStore
	case config.RateLimitStoreUlule:
		store = ratelimit.NewUluleStore(cfg.RateLimitMax, cfg.RateLimitWindow)
	case config.RateLimitStoreRedis:
		redisStore, err := ratelimit.NewRedisStore(cfg.RedisURL, cfg.RateLimitMax, cfg.RateLimitWindow)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
		}
		defer func() {
			if err := redisStore.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()
		zapLogger.Info("connected_to_redis")
		store = redisStore
	}

	// Initialize the upstream client. A missing key disables chat; the
	// handler reports the misconfiguration per request.
	var client *gemini.Client
	if cfg.GeminiAPIKey == "" {
		zapLogger.Warn("gemini_api_key_not_configured_chat_disabled")
	} else {
		client = gemini.NewClient(cfg.GeminiAPIKey,
			gemini.WithBaseURL(cfg.GeminiBaseURL),
			gemini.WithModel(cfg.GeminiModel),
			gemini.WithTimeout(cfg.UpstreamTimeout),
			gemini.WithLogger(zapLogger, debugMode),
		)
	}

	chatHandler := handlers.NewChatHandler(client, collector, zapLogger)

	// Setup router
	r := mux.NewRouter()

	if cfg.OTELEnabled {
		r.Use(otelmux.Middleware("chat-relay"))
	}
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	r.Use(middleware.CORS(middleware.CORSPolicy{
		AllowedOrigin:   cfg.AllowedOrigin,
		AllowDevOrigins: cfg.AllowDevOrigins,
	}))
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize, zapLogger))
	r.Use(middleware.Timeout(cfg.UpstreamTimeout + 5*time.Second))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.Logging(zapLogger))

	// Public routes
	r.HandleFunc("/healthz", handlers.Health).Methods("GET")
	r.HandleFunc("/version", handlers.VersionInfo).Methods("GET")
	r.Handle("/metrics", collector.Handler()).Methods("GET")

	// Chat route, rate limited per client IP
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.RateLimit(store, cfg.RateLimitMax, cfg.RateLimitWindow, collector, zapLogger))
	chatHandler.RegisterRoutes(apiRouter)

	// Catch-all so unmatched routes still pass through the middleware chain:
	// OPTIONS preflights get 204 from the CORS middleware, everything else 404.
	r.PathPrefix("/").HandlerFunc(handlers.NotFound)

	// Setup server. The write timeout must outlast the upstream call.
	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	bgCancel()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
