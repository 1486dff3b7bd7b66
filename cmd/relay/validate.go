package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lanternhq/relay/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load and validate the configuration file without starting the gateway.

All validation errors are reported together, so one pass is enough to fix
a broken file.

Examples:
  # Validate the default config
  relay validate

  # Validate a specific file
  relay validate --config /etc/relay/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("✗ Configuration invalid (%d errors)\n", len(verr.Errors))
			for _, fe := range verr.Errors {
				fmt.Printf("  - %s\n", fe.Error())
			}
			return fmt.Errorf("validation failed")
		}
		return err
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  listen address: %s\n", cfg.Server.ListenAddress)
	fmt.Printf("  upstream:       %s%s\n", cfg.Upstream.BaseURL, cfg.Upstream.ChatPath)
	fmt.Printf("  rate limit:     %d requests per %s\n", cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	fmt.Printf("  audit:          enabled=%t backend=%s\n", cfg.Audit.Enabled, cfg.Audit.Backend)
	return nil
}
