package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lanternhq/relay/pkg/audit"
	"lanternhq/relay/pkg/cli"
	"lanternhq/relay/pkg/config"
	"lanternhq/relay/pkg/limits/ratelimit"
	"lanternhq/relay/pkg/server"
	"lanternhq/relay/pkg/telemetry/metrics"
	"lanternhq/relay/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
	watchConfig   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay gateway",
	Long: `Start the relay gateway with the specified configuration.

The gateway listens on the configured address, validates and rate limits
chat requests, and forwards admitted requests to the upstream LLM service.

Examples:
  # Start with default config
  relay run

  # Start with custom config
  relay run --config /etc/relay/config.yaml

  # Override listen address
  relay run --listen 0.0.0.0:8080

  # Reload rate limit settings when the config file changes
  relay run --watch

  # Validate config without starting the gateway
  relay run --dry-run`,
	RunE: runGateway,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the gateway")
	runCmd.Flags().BoolVar(&runFlags.watchConfig, "watch", false, "watch the config file and apply rate limit changes")
}

func runGateway(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	setupLogging(&cfg.Telemetry.Logging)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Relay v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// Metrics
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
		fmt.Println("✓ Metrics collector initialized")
	}

	// Audit trail
	var recorder *audit.Recorder
	if cfg.Audit.Enabled {
		store, err := buildAuditStore(cfg)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		defer store.Close()

		recorder = audit.NewRecorder(store, &audit.RecorderConfig{
			Enabled:      true,
			Buffer:       cfg.Audit.Buffer,
			WriteTimeout: cfg.Audit.WriteTimeout,
		})
		defer recorder.Close()

		fmt.Printf("✓ Audit trail initialized (%s backend)\n", cfg.Audit.Backend)
	}

	// Rate limiter and background sweeper
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window,
	})

	sweeper := ratelimit.NewSweeper(limiter, cfg.RateLimit.SweepInterval)
	if collector != nil {
		sweeper.OnSweep = func(removed, tracked int) {
			collector.RecordSweep(removed)
			collector.UpdateTrackedIdentities(tracked)
		}
	}
	if err := sweeper.Start(); err != nil {
		return cli.NewCommandError("run", err)
	}
	defer sweeper.Stop()

	fmt.Printf("✓ Rate limiter ready (%d requests per %s)\n",
		cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)

	// Upstream client
	client := upstream.NewClient(upstream.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		ChatPath: cfg.Upstream.ChatPath,
		Timeout:  cfg.Upstream.Timeout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Config watcher: rate limit changes apply without restart. Server
	// level settings still need one.
	if runFlags.watchConfig {
		watcher, err := config.NewWatcher(&config.WatcherConfig{Path: cfgFile}, slog.Default())
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		go watcher.Watch(ctx, func(next *config.Config) {
			limiter.UpdateConfig(ratelimit.Config{
				MaxRequests: next.RateLimit.MaxRequests,
				Window:      next.RateLimit.Window,
			})
			slog.Info("rate limit configuration applied",
				"max_requests", next.RateLimit.MaxRequests,
				"window", next.RateLimit.Window.String(),
			)
		})
		defer watcher.Stop()
		fmt.Println("✓ Config watcher started")
	}

	srv := server.NewServer(cfg, server.Deps{
		Upstream: client,
		Limiter:  limiter,
		Recorder: recorder,
		Metrics:  collector,
	})

	fmt.Println()
	fmt.Printf("✓ Gateway listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Gateway stopped")
	return nil
}

// setupLogging configures the process-wide slog default.
func setupLogging(cfg *config.LoggingConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// buildAuditStore creates the configured audit storage backend.
func buildAuditStore(cfg *config.Config) (audit.Store, error) {
	switch cfg.Audit.Backend {
	case "sqlite":
		return audit.NewSQLiteStore(&audit.SQLiteConfig{
			Path:         cfg.Audit.SQLite.Path,
			MaxOpenConns: cfg.Audit.SQLite.MaxOpenConns,
			MaxIdleConns: cfg.Audit.SQLite.MaxIdleConns,
			WALMode:      cfg.Audit.SQLite.WALMode,
			BusyTimeout:  cfg.Audit.SQLite.BusyTimeout,
		})
	case "memory":
		return audit.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported audit backend: %s", cfg.Audit.Backend)
	}
}
