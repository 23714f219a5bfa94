package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/poll"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print session token status for all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		watcher := poll.NewWatcher(a.client, a.cfg.TokenPollInterval, a.logger)
		snap := watcher.Poll(cmd.Context())
		if snap.Err != nil {
			return snap.Err
		}

		out := cmd.OutOrStdout()
		for _, st := range snap.Statuses {
			state := "ok"
			if st.NeedsReauth {
				state = "re-auth needed"
			} else if !st.Authenticated {
				state = "not authenticated"
			}
			fmt.Fprintf(out, "%-16s %-16s %6.1fh remaining  %s\n", st.UserID, state, st.HoursRemaining, st.Message)
		}
		if u := snap.UrgentUser(); u != nil {
			fmt.Fprintf(out, "\nMost urgent: %s (%.1fh remaining)\n", u.UserID, u.HoursRemaining)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
