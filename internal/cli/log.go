package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/collector"
	"toggl-sherpa/internal/config"
)

var logInterval time.Duration

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Control the focus/idle sample collector",
}

var logOnceCmd = &cobra.Command{
	Use:   "once",
	Short: "Capture and store a single sample",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		if err := collector.InsertOnce(ctx, a.Store); err != nil {
			return err
		}
		fmt.Println("sample stored")
		return nil
	},
}

var logRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample in the foreground until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		return collector.RunLoop(ctx, a.Store, logInterval, logger)
	},
}

var logStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the collector in the background",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		pid, err := collector.Start(config.PidfilePath(), cfg.DB, logInterval)
		if err != nil {
			return err
		}
		fmt.Printf("collector started (pid %d)\n", pid)
		return nil
	},
}

var logStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the background collector",
	RunE: func(cmd *cobra.Command, args []string) error {
		stopped, err := collector.Stop(config.PidfilePath(), 5*time.Second)
		if err != nil {
			return err
		}
		if stopped {
			fmt.Println("collector stopped")
		} else {
			fmt.Println("collector was not running")
		}
		return nil
	},
}

var logStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the background collector is running",
	RunE: func(cmd *cobra.Command, args []string) error {
		running, pid := collector.Status(config.PidfilePath())
		switch {
		case running:
			fmt.Printf("running (pid %d)\n", pid)
		case pid != 0:
			fmt.Printf("not running (stale pidfile, pid %d)\n", pid)
		default:
			fmt.Println("not running")
		}
		return nil
	},
}

func init() {
	logCmd.PersistentFlags().DurationVar(&logInterval, "interval", 10*time.Second, "Sampling interval")
	logCmd.AddCommand(logOnceCmd)
	logCmd.AddCommand(logRunCmd)
	logCmd.AddCommand(logStartCmd)
	logCmd.AddCommand(logStopCmd)
	logCmd.AddCommand(logStatusCmd)
}
