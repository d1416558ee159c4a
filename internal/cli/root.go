// Package cli defines the toggl-sherpa command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/app"
	"toggl-sherpa/internal/config"
	"toggl-sherpa/internal/domain"
	"toggl-sherpa/internal/ledger"
)

var (
	flagVerbose bool
	flagDB      string

	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "toggl-sherpa",
	Short: "Turn desktop activity into reviewed Toggl time entries",
	Long: `toggl-sherpa samples your focused window and browser tabs into a local
sqlite database, segments a day into labeled timesheet blocks for review,
and applies the reviewed blocks to Toggl Track exactly once per entry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		logger = slog.New(handler)
		slog.SetDefault(logger)
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite DB path (default: XDG data dir)")

	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(togglCmd)
	rootCmd.AddCommand(tabCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(doctorCmd)
}

// loadConfig merges the environment config with the --db override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDB != "" {
		cfg.DB = flagDB
	}
	return cfg, nil
}

// openApp opens the store-backed application for one command invocation.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, logger, cfg)
}

// parseDate parses a --date value (YYYY-MM-DD); empty means today (UTC).
func parseDate(val string) (time.Time, error) {
	if val == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse("2006-01-02", val)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", val)
	}
	return d, nil
}

// printPlan renders the plan for human inspection before (or instead of)
// applying it. Each item is fingerprinted exactly as a real run would
// record it, so a dry run surfaces the hashes the ledger will see.
func printPlan(w io.Writer, plan []domain.ApplyPlanItem) {
	fmt.Fprintf(w, "plan: %d time entr(y/ies)\n", len(plan))
	for i, p := range plan {
		fp := ledger.Fingerprint(domain.TSUTC(p.Start), domain.TSUTC(p.Stop), p.Description)
		tags := "-"
		if len(p.Tags) > 0 {
			tags = strings.Join(p.Tags, ",")
		}
		fmt.Fprintf(w, "%2d. %s → %s | %s | %s | %s\n",
			i+1, domain.TSUTC(p.Start), domain.TSUTC(p.Stop), fp[:12], tags, p.Description)
	}
}
