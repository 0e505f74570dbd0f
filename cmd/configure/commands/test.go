package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/benvon/chat-relay/internal/config"
	"github.com/benvon/chat-relay/internal/gemini"
	"github.com/benvon/chat-relay/internal/ratelimit"
	"github.com/spf13/cobra"
)

// NewTestCmd creates the test command with upstream and redis subcommands.
func NewTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Probe chat-relay dependencies",
	}
	cmd.AddCommand(newTestUpstreamCmd())
	cmd.AddCommand(newTestRedisCmd())
	return cmd
}

func newTestUpstreamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upstream",
		Short: "Send a probe message to the Gemini API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.GeminiAPIKey == "" {
				return fmt.Errorf("GEMINI_API_KEY is not configured")
			}

			client := gemini.NewClient(cfg.GeminiAPIKey,
				gemini.WithBaseURL(cfg.GeminiBaseURL),
				gemini.WithModel(cfg.GeminiModel),
				gemini.WithTimeout(cfg.UpstreamTimeout),
			)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
			defer cancel()

			start := time.Now()
			reply, err := client.GenerateReply(ctx, "Reply with a single word.", []gemini.Content{
				{Role: "user", Parts: []gemini.Part{{Text: "ping"}}},
			})
			if err != nil {
				return fmt.Errorf("probe %s: %w", client.Model(), err)
			}

			fmt.Printf("Upstream OK (%s, %s): %q\n", client.Model(), time.Since(start).Round(time.Millisecond), reply)
			return nil
		},
	}
}

func newTestRedisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redis",
		Short: "Check Redis connectivity for the redis rate limit store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			store, err := ratelimit.NewRedisStore(cfg.RedisURL, cfg.RateLimitMax, cfg.RateLimitWindow)
			if err != nil {
				return fmt.Errorf("connect to redis: %w", err)
			}
			defer func() {
				_ = store.Close()
			}()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				return fmt.Errorf("ping redis: %w", err)
			}

			fmt.Println("Redis OK")
			return nil
		},
	}
}
