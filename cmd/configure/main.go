package main

import (
	"fmt"
	"os"

	"github.com/benvon/chat-relay/cmd/configure/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "chat-relay-configure",
		Short: "Configuration tool for chat-relay",
		Long:  "CLI tool for inspecting chat-relay configuration and probing its dependencies",
	}

	rootCmd.AddCommand(commands.NewConfigCmd())
	rootCmd.AddCommand(commands.NewTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
