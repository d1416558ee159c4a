package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"toggl-sherpa/internal/domain"
)

var (
	ledgerSince string
	ledgerLimit int
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect the idempotency ledger",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List applied entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		since, err := parseSince(ledgerSince)
		if err != nil {
			return err
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Store.ListApplied(ctx, since, ledgerLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("ledger is empty")
			return nil
		}
		for _, e := range entries {
			id := "-"
			if e.TimeEntryID != nil {
				id = fmt.Sprintf("%d", *e.TimeEntryID)
			}
			fmt.Printf("%s  %s  entry=%s  %s\n",
				domain.TSUTC(e.TS), e.Fingerprint[:12], id, e.Description)
		}
		return nil
	},
}

var ledgerStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		since, err := parseSince(ledgerSince)
		if err != nil {
			return err
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.Store.Stats(ctx, since)
		if err != nil {
			return err
		}
		fmt.Printf("entries: %d\n", st.Count)
		fmt.Printf("unique time entry ids: %d\n", st.UniqueTimeEntryIDs)
		if st.MinTS != nil {
			fmt.Printf("first applied: %s\n", domain.TSUTC(*st.MinTS))
		}
		if st.MaxTS != nil {
			fmt.Printf("last applied: %s\n", domain.TSUTC(*st.MaxTS))
		}
		return nil
	},
}

// parseSince accepts YYYY-MM-DD or RFC3339; empty means no lower bound.
func parseSince(val string) (*time.Time, error) {
	if val == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil, fmt.Errorf("invalid --since %q, expected YYYY-MM-DD or RFC3339", val)
	}
	return &t, nil
}

func init() {
	ledgerCmd.PersistentFlags().StringVar(&ledgerSince, "since", "", "Only entries applied at or after this time")
	ledgerListCmd.Flags().IntVar(&ledgerLimit, "limit", 50, "Maximum entries to list")
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerStatsCmd)
}
