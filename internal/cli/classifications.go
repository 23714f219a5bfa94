package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	clsStart string
	clsEnd   string
)

var classificationsCmd = &cobra.Command{
	Use:   "classifications [query]",
	Short: "List classification suggestions",
	Long: `Prints the suggested classification labels, optionally narrowed by a
case-insensitive query. With --start/--end, labels found in that date range
but missing from the suggestions are appended.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		names := a.suggestions.Names()
		if clsStart != "" || clsEnd != "" {
			start, end, err := parseRange(clsStart, clsEnd)
			if err != nil {
				return err
			}
			if err := a.session.SetRange(cmd.Context(), start, end); err != nil {
				return err
			}
			names = a.suggestions.Merged(a.session.Available())
		}
		if len(args) == 1 {
			names = a.suggestions.Match(args[0])
		}

		out := cmd.OutOrStdout()
		for _, name := range names {
			marker := " "
			if a.suggestions.IsCustom(name) {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s\n", marker, name)
		}
		return nil
	},
}

func init() {
	classificationsCmd.Flags().StringVar(&clsStart, "start", "", "range start (YYYY-MM-DD)")
	classificationsCmd.Flags().StringVar(&clsEnd, "end", "", "range end (YYYY-MM-DD)")
	rootCmd.AddCommand(classificationsCmd)
}
