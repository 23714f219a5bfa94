package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/report"
)

var rangeFilter []string

var rangeCmd = &cobra.Command{
	Use:   "range START END",
	Short: "Fetch a date range and print spend summaries",
	Long: `Fetches all transactions between START and END (inclusive civil dates,
YYYY-MM-DD) and prints the classification and daily summaries the dashboard
charts are built from.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		start, end, err := parseRange(args[0], args[1])
		if err != nil {
			return err
		}
		if err := a.session.SetRange(cmd.Context(), start, end); err != nil {
			return err
		}
		if len(rangeFilter) > 0 {
			a.session.SetFilter(rangeFilter...)
		}

		printSummary(cmd, a.session.Transactions(), a.session.ByClassification(), a.session.ByDay())
		return nil
	},
}

func init() {
	rangeCmd.Flags().StringSliceVar(&rangeFilter, "filter", nil, "only include these classifications")
	rootCmd.AddCommand(rangeCmd)
}

func parseRange(startArg, endArg string) (core.Day, core.Day, error) {
	start, err := core.ParseDay(startArg)
	if err != nil {
		return core.Day{}, core.Day{}, err
	}
	end, err := core.ParseDay(endArg)
	if err != nil {
		return core.Day{}, core.Day{}, err
	}
	return start, end, nil
}

func printSummary(cmd *cobra.Command, txs []core.Transaction, groups []report.ClassificationGroup, buckets []report.DayBucket) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%d transactions, total %s\n\n", len(txs), report.Total(txs))

	fmt.Fprintln(out, "By classification:")
	for _, g := range groups {
		fmt.Fprintf(out, "  %-24s %12s  (%d)\n", g.Name, g.Total, len(g.Transactions))
	}

	fmt.Fprintln(out, "\nBy day:")
	for _, b := range buckets {
		fmt.Fprintf(out, "  %s  %12s\n", b.Day, b.Total)
	}

	fmt.Fprintln(out, "\nTransactions:")
	for i, tx := range txs {
		extra := ""
		if strings.TrimSpace(tx.OriginalAmount) != "" {
			extra = fmt.Sprintf("  (original %s, paid to me %s)", tx.OriginalAmount, tx.PaidToMe)
		}
		fmt.Fprintf(out, "  [%d] %s  %-24s %-20s %10s%s\n",
			i, tx.Date.Format("2006-01-02 15:04:05"), tx.Receiver, tx.Classification, tx.Amount, extra)
	}
}
