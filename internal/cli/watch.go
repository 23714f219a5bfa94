package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"finboard/internal/poll"
)

var (
	watchStart   string
	watchEnd     string
	watchRefresh time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep a date range fresh and watch session token status",
	Long: `Fetches the range once on startup, then refreshes it on an interval
while polling the token-status endpoint in the background. A re-auth banner
line is printed whenever the status flips. Stops on SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		start, end, err := parseRange(watchStart, watchEnd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// One-shot initialization fetch, then the two recurring tasks run
		// independently: neither is synchronized with the other.
		if err := a.session.SetRange(ctx, start, end); err != nil {
			return err
		}
		printSummary(cmd, a.session.Transactions(), a.session.ByClassification(), a.session.ByDay())

		watcher := poll.NewWatcher(a.client, a.cfg.TokenPollInterval, a.logger)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			watcher.Run(ctx)
			return nil
		})
		g.Go(func() error {
			ticker := time.NewTicker(watchRefresh)
			defer ticker.Stop()
			var wasReauth bool
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := a.session.Refresh(ctx); err != nil {
						// Stale-but-consistent: keep showing the old set.
						a.logger.Warn("Refresh failed", "error", err)
						continue
					}
					fmt.Fprintln(cmd.OutOrStdout())
					printSummary(cmd, a.session.Transactions(), a.session.ByClassification(), a.session.ByDay())

					snap := watcher.Status()
					if snap.NeedsReauth() != wasReauth {
						wasReauth = snap.NeedsReauth()
						if wasReauth {
							if u := snap.UrgentUser(); u != nil {
								fmt.Fprintf(cmd.OutOrStdout(), "!! re-auth needed for %s (%.1fh remaining): %s\n",
									u.UserID, u.HoursRemaining, u.Message)
							}
						} else {
							fmt.Fprintln(cmd.OutOrStdout(), "re-auth no longer needed")
						}
					}
				}
			}
		})

		if err := g.Wait(); err != nil && ctx.Err() == nil {
			return err
		}
		a.logger.Info("Watch stopped")
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchStart, "start", "", "range start (YYYY-MM-DD)")
	watchCmd.Flags().StringVar(&watchEnd, "end", "", "range end (YYYY-MM-DD)")
	watchCmd.Flags().DurationVar(&watchRefresh, "refresh", time.Minute, "data refresh interval")
	_ = watchCmd.MarkFlagRequired("start")
	_ = watchCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(watchCmd)
}
