package commands

import (
	"fmt"

	"github.com/benvon/chat-relay/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command, which prints the resolved
// environment configuration with the API key masked.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			fmt.Println("Resolved configuration:")
			fmt.Printf("  Server port:        %s\n", cfg.ServerPort)
			fmt.Printf("  Allowed origin:     %s\n", cfg.AllowedOrigin)
			fmt.Printf("  Allow dev origins:  %v\n", cfg.AllowDevOrigins)
			fmt.Printf("  Gemini API key:     %s\n", maskKey(cfg.GeminiAPIKey))
			fmt.Printf("  Gemini model:       %s\n", cfg.GeminiModel)
			fmt.Printf("  Upstream timeout:   %s\n", cfg.UpstreamTimeout)
			fmt.Printf("  Rate limit:         %d per %s (%s store)\n", cfg.RateLimitMax, cfg.RateLimitWindow, cfg.RateLimitStore)
			if cfg.RateLimitStore == config.RateLimitStoreRedis {
				fmt.Printf("  Redis URL:          %s\n", cfg.RedisURL)
			}
			return nil
		},
	}
}

func maskKey(key string) string {
	if key == "" {
		return "(not configured)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
