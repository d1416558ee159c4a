package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		token := "(missing)"
		if cfg.Toggl.APIToken != "" {
			token = "(set)"
		}
		ws := "(missing)"
		if cfg.Toggl.WorkspaceID != 0 {
			ws = fmt.Sprintf("%d", cfg.Toggl.WorkspaceID)
		}
		allow := cfg.AllowHosts
		if allow == "" {
			allow = "(empty: every tab is redacted)"
		}

		fmt.Printf("db:            %s\n", cfg.DB)
		fmt.Printf("mapping:       %s\n", config.DefaultMappingPath())
		fmt.Printf("pidfile:       %s\n", config.PidfilePath())
		fmt.Printf("timezone:      %s\n", cfg.Timezone)
		fmt.Printf("allow hosts:   %s\n", allow)
		fmt.Printf("toggl token:   %s\n", token)
		fmt.Printf("toggl wsid:    %s\n", ws)
		fmt.Printf("toggl base:    %s\n", cfg.Toggl.BaseURL)

		if err := cfg.RequireToggl(); err != nil {
			fmt.Println()
			fmt.Printf("apply is not configured: %v\n", err)
			fmt.Println("set TOGGL_API_TOKEN and TOGGL_WORKSPACE_ID to enable it")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
