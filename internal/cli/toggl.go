package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	tg "toggl-sherpa/internal/adapter/toggl"
)

var togglCmd = &cobra.Command{
	Use:   "toggl",
	Short: "Query the configured Toggl workspace",
}

var togglProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireToggl(); err != nil {
			return err
		}
		client := tg.NewClient(cfg.Toggl.BaseURL, cfg.Toggl.APIToken, cfg.Toggl.WorkspaceID, logger)
		projects, err := client.ListProjects(cmd.Context(), 0)
		if err != nil {
			return err
		}
		for _, p := range projects {
			fmt.Printf("%d\t%s\n", p.ID, p.Name)
		}
		return nil
	},
}

var togglClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List clients in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.RequireToggl(); err != nil {
			return err
		}
		client := tg.NewClient(cfg.Toggl.BaseURL, cfg.Toggl.APIToken, cfg.Toggl.WorkspaceID, logger)
		clients, err := client.ListClients(cmd.Context(), 0)
		if err != nil {
			return err
		}
		for _, c := range clients {
			fmt.Printf("%d\t%s\n", c.ID, c.Name)
		}
		return nil
	},
}

func init() {
	togglCmd.AddCommand(togglProjectsCmd)
	togglCmd.AddCommand(togglClientsCmd)
}
