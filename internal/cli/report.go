package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/summarise"
	"toggl-sherpa/internal/timesheet"
)

var (
	reportDate   string
	reportBlocks string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a draft timesheet as markdown",
	Long: `Render blocks as a human-readable markdown report. With --blocks the
report covers a previously written blocks file; otherwise the day given by
--date is segmented with default thresholds first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var md string
		if reportBlocks != "" {
			bl, err := timesheet.Load(reportBlocks)
			if err != nil {
				return err
			}
			md = timesheet.Markdown(bl)
		} else {
			date, err := parseDate(reportDate)
			if err != nil {
				return err
			}
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			bl, err := a.SummariseDay(ctx, date, summarise.DefaultOptions())
			if err != nil {
				return err
			}
			md = timesheet.Markdown(bl)
		}

		if reportOut != "" {
			if err := os.WriteFile(reportOut, []byte(md), 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote report to %s\n", reportOut)
			return nil
		}
		fmt.Print(md)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Day to report, YYYY-MM-DD (default: today, UTC)")
	reportCmd.Flags().StringVar(&reportBlocks, "blocks", "", "Render this blocks file instead of querying the store")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write the report to this file instead of stdout")
}
