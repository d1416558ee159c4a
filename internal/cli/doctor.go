package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/collector"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment can collect, store and apply",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		failed := false

		if _, err := exec.LookPath("gdbus"); err != nil {
			fmt.Println("gdbus:        MISSING (focus sampling needs glib2 / gdbus)")
			failed = true
		} else if _, err := collector.GetFocusSample(ctx); err != nil {
			fmt.Printf("gnome shell:  FAIL (%v)\n", err)
			failed = true
		} else {
			fmt.Println("gnome shell:  ok")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := openApp(ctx)
		if err != nil {
			fmt.Printf("sqlite:       FAIL (%v)\n", err)
			failed = true
		} else {
			fmt.Printf("sqlite:       ok (%s)\n", cfg.DB)
			_ = a.Close()
		}

		if err := cfg.RequireToggl(); err != nil {
			fmt.Printf("toggl:        not configured (%v)\n", err)
		} else {
			fmt.Println("toggl:        configured")
		}

		if failed {
			return fmt.Errorf("doctor found problems")
		}
		return nil
	},
}
