package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay - rate-limited gateway for LLM chat traffic",
	Long: `Relay is an HTTP gateway that fronts a downstream LLM chat service.

It provides:
  - Request validation (session, query, email) before any work is done
  - Per-client sliding-window rate limiting keyed by address and session
  - Upstream forwarding with timeout and failure classification
  - An audit trail of every request decision
  - Prometheus metrics and structured JSON logging`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
