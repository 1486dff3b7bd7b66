package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lanternhq/relay/pkg/audit"
	"lanternhq/relay/pkg/cli"
	"lanternhq/relay/pkg/config"
)

var auditQueryFlags struct {
	sessionID  string
	clientAddr string
	outcome    string
	timeRange  string
	limit      int
	format     string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the audit trail",
	Long:  `Query and count audit records written by the gateway.`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query audit records",
	Long: `Query audit records from the configured sqlite backend.

Examples:
  # Last 20 rate-limited requests
  relay audit query --outcome rate_limited --limit 20

  # Everything one session did today
  relay audit query --session session-1 --time-range "2026-08-30T00:00:00Z/2026-08-31T00:00:00Z"

  # JSON output for scripting
  relay audit query --format json`,
	RunE: runAuditQuery,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd)

	auditQueryCmd.Flags().StringVar(&auditQueryFlags.sessionID, "session", "", "filter by session id")
	auditQueryCmd.Flags().StringVar(&auditQueryFlags.clientAddr, "client", "", "filter by client address")
	auditQueryCmd.Flags().StringVar(&auditQueryFlags.outcome, "outcome", "", "filter by outcome (success, rejected, rate_limited, upstream_error)")
	auditQueryCmd.Flags().StringVar(&auditQueryFlags.timeRange, "time-range", "", "RFC3339 interval start/end")
	auditQueryCmd.Flags().IntVar(&auditQueryFlags.limit, "limit", 50, "maximum records to return")
	auditQueryCmd.Flags().StringVar(&auditQueryFlags.format, "format", "text", "output format: text, json")
}

func runAuditQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if cfg.Audit.Backend != "sqlite" {
		return cli.NewCommandError("audit query",
			fmt.Errorf("audit backend %q holds no queryable history; use the sqlite backend", cfg.Audit.Backend))
	}

	store, err := audit.NewSQLiteStore(&audit.SQLiteConfig{
		Path:        cfg.Audit.SQLite.Path,
		WALMode:     cfg.Audit.SQLite.WALMode,
		BusyTimeout: cfg.Audit.SQLite.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("audit query", err)
	}
	defer store.Close()

	query := &audit.Query{
		SessionID:  auditQueryFlags.sessionID,
		ClientAddr: auditQueryFlags.clientAddr,
		Outcome:    auditQueryFlags.outcome,
		Limit:      auditQueryFlags.limit,
	}

	if auditQueryFlags.timeRange != "" {
		start, end, err := parseTimeRange(auditQueryFlags.timeRange)
		if err != nil {
			return cli.NewCommandError("audit query", err)
		}
		query.StartTime = &start
		query.EndTime = &end
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := store.List(ctx, query)
	if err != nil {
		return cli.NewCommandError("audit query", err)
	}

	if auditQueryFlags.format == string(cli.FormatJSON) {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, records)
	}

	if len(records) == 0 {
		fmt.Println("No matching audit records")
		return nil
	}

	for _, r := range records {
		line := fmt.Sprintf("%s  %-14s %3d  %s",
			r.ReceivedAt.Format(time.RFC3339), r.Outcome, r.Status, r.Identity)
		if r.Error != "" {
			line += "  " + r.Error
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d records\n", len(records))
	return nil
}

// parseTimeRange parses an RFC3339 interval of the form start/end.
func parseTimeRange(value string) (time.Time, time.Time, error) {
	parts := strings.SplitN(value, "/", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("time range must be start/end, got %q", value)
	}

	start, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time %q: %w", parts[0], err)
	}
	end, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time %q: %w", parts[1], err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("time range end precedes start")
	}

	return start, end, nil
}
