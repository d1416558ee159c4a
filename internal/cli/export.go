package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/timesheet"
)

var (
	exportBlocks string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export blocks to other formats",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Write blocks as a Toggl Track import CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportBlocks == "" {
			return errors.New("--blocks is required")
		}
		if exportOut == "" {
			return errors.New("--out is required")
		}
		blocks, err := timesheet.Load(exportBlocks)
		if err != nil {
			return err
		}
		if err := timesheet.WriteCSV(exportOut, blocks); err != nil {
			return err
		}
		fmt.Printf("wrote %d row(s) to %s\n", len(blocks), exportOut)
		return nil
	},
}

func init() {
	exportCSVCmd.Flags().StringVar(&exportBlocks, "blocks", "", "Blocks file to export")
	exportCSVCmd.Flags().StringVarP(&exportOut, "out", "o", "", "CSV output path")
	exportCmd.AddCommand(exportCSVCmd)
}
