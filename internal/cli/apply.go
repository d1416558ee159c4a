package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/apply"
	"toggl-sherpa/internal/config"
	"toggl-sherpa/internal/timesheet"
)

var (
	applyBlocks  string
	applyMapping string
	applyDryRun  bool
	applyForce   bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Create Toggl time entries for reviewed blocks, exactly once each",
	Long: `Apply builds one time entry per block and pushes it to Toggl Track.
Every entry is fingerprinted and recorded in a local ledger; a rerun over
the same blocks skips everything already applied. --dry-run prints the plan
without touching Toggl or the ledger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if applyBlocks == "" {
			return errors.New("--blocks is required")
		}

		blocks, err := timesheet.Load(applyBlocks)
		if err != nil {
			return err
		}
		mapping, err := config.LoadMapping(applyMapping)
		if err != nil {
			return err
		}
		plan := apply.BuildPlan(blocks, mapping.ProjectIDs, mapping.TagMap)

		if applyDryRun {
			printPlan(os.Stdout, plan)
			return nil
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := a.Cfg.RequireToggl(); err != nil {
			return err
		}

		res, err := a.ApplyPlan(ctx, plan, applyForce)
		if err != nil {
			return err
		}
		fmt.Printf("applied: created=%d skipped=%d\n", res.Created, res.Skipped)
		for _, s := range res.SkippedItems {
			fmt.Printf("  skipped: %s\n", s.Description)
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVar(&applyBlocks, "blocks", "", "Reviewed blocks file to apply")
	applyCmd.Flags().StringVar(&applyMapping, "mapping", "", "Mapping file (default: XDG config dir)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Print the plan without applying it")
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "Apply even entries the ledger marks as done")
}
