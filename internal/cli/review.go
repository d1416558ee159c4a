package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/review"
	"toggl-sherpa/internal/timesheet"
)

var (
	reviewBlocks string
	reviewOut    string
	reviewYes    bool
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Walk through draft blocks, accepting, editing or skipping each",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reviewBlocks == "" {
			return errors.New("--blocks is required")
		}
		if reviewOut == "" {
			return errors.New("--out is required")
		}

		blocks, err := timesheet.Load(reviewBlocks)
		if err != nil {
			return err
		}

		accepted := review.AcceptAll(blocks)
		if !reviewYes {
			accepted = review.Interactive(os.Stdin, os.Stdout, blocks)
		}

		if err := timesheet.Write(reviewOut, accepted); err != nil {
			return err
		}
		fmt.Printf("accepted %d of %d block(s); wrote %s\n", len(accepted), len(blocks), reviewOut)
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewBlocks, "blocks", "", "Draft blocks file to review")
	reviewCmd.Flags().StringVarP(&reviewOut, "out", "o", "", "Write accepted blocks to this file")
	reviewCmd.Flags().BoolVarP(&reviewYes, "yes", "y", false, "Accept every block without prompting")
}
