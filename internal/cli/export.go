package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/export"
)

var (
	exportStart string
	exportEnd   string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a date range to an .xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		start, end, err := parseRange(exportStart, exportEnd)
		if err != nil {
			return err
		}
		if err := a.session.SetRange(cmd.Context(), start, end); err != nil {
			return err
		}

		txs := a.session.All()
		if err := export.WriteWorkbook(exportOut, txs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d transactions to %s\n", len(txs), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportStart, "start", "", "range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportEnd, "end", "", "range end (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportOut, "out", "report.xlsx", "output file path")
	_ = exportCmd.MarkFlagRequired("start")
	_ = exportCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(exportCmd)
}
