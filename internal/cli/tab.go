package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	tabAddr  string
	tabAllow string
)

var tabCmd = &cobra.Command{
	Use:   "tab",
	Short: "Tab-event ingestion",
}

var tabServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server that receives active-tab events",
	Long: `Serve listens for active-tab observations posted by the browser
extension, redacts each against the host allowlist, correlates it with the
nearest activity sample and stores it. Only the redaction verdict ever
leaves the process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if tabAllow != "" {
			a.Cfg.AllowHosts = tabAllow
		}

		srv := a.TabServer(tabAddr)
		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()
		logger.Info("tab server listening", slog.String("addr", tabAddr))

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	},
}

func init() {
	tabCmd.AddCommand(tabServeCmd)
	tabServeCmd.Flags().StringVar(&tabAddr, "addr", "127.0.0.1:8135", "Listen address")
	tabServeCmd.Flags().StringVar(&tabAllow, "allow", "", "Comma-separated host allowlist (overrides SHERPA_ALLOW_HOSTS)")
}
