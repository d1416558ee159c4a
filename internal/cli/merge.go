package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/timesheet"
)

var (
	mergeBlocks string
	mergeOut    string
	mergeGapS   int64
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Coalesce near-contiguous blocks with identical attributes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if mergeBlocks == "" {
			return errors.New("--blocks is required")
		}

		blocks, err := timesheet.Load(mergeBlocks)
		if err != nil {
			return err
		}
		merged := timesheet.Merge(blocks, mergeGapS)

		if mergeOut != "" {
			if err := timesheet.Write(mergeOut, merged); err != nil {
				return err
			}
			fmt.Printf("merged %d block(s) into %d; wrote %s\n", len(blocks), len(merged), mergeOut)
			return nil
		}

		data, err := timesheet.Encode(merged)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

func init() {
	mergeCmd.Flags().StringVar(&mergeBlocks, "blocks", "", "Blocks file to merge")
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "Write merged blocks to this file instead of stdout")
	mergeCmd.Flags().Int64Var(&mergeGapS, "gap-s", 60, "Merge blocks separated by at most this many seconds")
}
