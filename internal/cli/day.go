package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/summarise"
	"toggl-sherpa/internal/timesheet"
)

var (
	dayDate         string
	dayOut          string
	dayIdleMS       int64
	dayGapS         int64
	dayMinBlockS    int64
	dayAssumedIntvS int64
)

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Segment one day's activity into draft timesheet blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		date, err := parseDate(dayDate)
		if err != nil {
			return err
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		opts := summarise.Options{
			IdleThresholdMS:  dayIdleMS,
			GapThresholdS:    dayGapS,
			MinBlockS:        dayMinBlockS,
			AssumedIntervalS: dayAssumedIntvS,
		}
		blocks, err := a.SummariseDay(ctx, date, opts)
		if err != nil {
			return err
		}

		if dayOut != "" {
			if err := timesheet.Write(dayOut, blocks); err != nil {
				return err
			}
			fmt.Printf("wrote %d block(s) to %s\n", len(blocks), dayOut)
			return nil
		}

		data, err := timesheet.Encode(blocks)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	def := summarise.DefaultOptions()
	dayCmd.Flags().StringVar(&dayDate, "date", "", "Day to segment, YYYY-MM-DD (default: today, UTC)")
	dayCmd.Flags().StringVarP(&dayOut, "out", "o", "", "Write blocks JSON to this file instead of stdout")
	dayCmd.Flags().Int64Var(&dayIdleMS, "idle-threshold-ms", def.IdleThresholdMS, "Drop samples idle at least this long")
	dayCmd.Flags().Int64Var(&dayGapS, "gap-s", def.GapThresholdS, "Split a block on gaps longer than this")
	dayCmd.Flags().Int64Var(&dayMinBlockS, "min-block-s", def.MinBlockS, "Discard blocks shorter than this")
	dayCmd.Flags().Int64Var(&dayAssumedIntvS, "assumed-interval-s", def.AssumedIntervalS, "Assumed duration of the final sample")
}
