package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"finboard/internal/core"
)

var (
	addAmount         string
	addReceiver       string
	addClassification string
	addDate           string

	mutStart string
	mutEnd   string
	mutIndex int

	reclassifyTo string
	payerSpecs   []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Manually add a transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}

		ts, err := parseTimestamp(addDate)
		if err != nil {
			return err
		}
		tx := core.Transaction{
			Classification: strings.TrimSpace(addClassification),
			Amount:         addAmount,
			Receiver:       addReceiver,
			Date:           ts,
		}
		if a.suggestions.IsCustom(tx.Classification) {
			a.logger.Info("Using custom classification", "classification", tx.Classification)
		}

		// The session needs an active range for its follow-up re-fetch.
		start, end, err := parseRange(mutStart, mutEnd)
		if err != nil {
			return err
		}
		if err := a.session.SetRange(cmd.Context(), start, end); err != nil {
			return err
		}
		if err := a.session.Add(cmd.Context(), tx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s (%s)\n", tx.Amount, tx.Receiver, tx.Classification)
		return nil
	},
}

var reclassifyCmd = &cobra.Command{
	Use:   "reclassify",
	Short: "Assign a new classification to a transaction",
	Long: `Fetches the date range, picks the transaction at --index as printed by
'finboard range', and submits the reclassification.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		tx, err := pickTransaction(cmd, a)
		if err != nil {
			return err
		}
		if err := a.session.Reclassify(cmd.Context(), tx, strings.TrimSpace(reclassifyTo)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reclassified %q -> %q\n", tx.Classification, reclassifyTo)
		return nil
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Split a transaction across payers and update its net amount",
	Long: `Records who reimbursed parts of a transaction. Each --payer takes
"name=amount"; payers with a blank name or amount are ignored. The backend
persists the original amount on first normalization, so re-running never
double-counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		tx, err := pickTransaction(cmd, a)
		if err != nil {
			return err
		}
		payers, err := parsePayers(payerSpecs)
		if err != nil {
			return err
		}

		n, err := a.session.Normalize(cmd.Context(), tx, payers)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Original %s, paid to me %s, new net amount %s\n",
			n.OriginalAmount, n.PaidToMe, n.Net)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addAmount, "amount", "", "transaction amount")
	addCmd.Flags().StringVar(&addReceiver, "receiver", "", "receiver or merchant")
	addCmd.Flags().StringVar(&addClassification, "classification", "", "classification label")
	addCmd.Flags().StringVar(&addDate, "date", "", "transaction time (YYYY-MM-DD or 'YYYY-MM-DD HH:MM:SS', default now)")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("receiver")
	_ = addCmd.MarkFlagRequired("classification")

	for _, c := range []*cobra.Command{addCmd, reclassifyCmd, normalizeCmd} {
		c.Flags().StringVar(&mutStart, "start", "", "range start (YYYY-MM-DD)")
		c.Flags().StringVar(&mutEnd, "end", "", "range end (YYYY-MM-DD)")
		_ = c.MarkFlagRequired("start")
		_ = c.MarkFlagRequired("end")
	}
	for _, c := range []*cobra.Command{reclassifyCmd, normalizeCmd} {
		c.Flags().IntVar(&mutIndex, "index", -1, "transaction index as printed by 'finboard range'")
		_ = c.MarkFlagRequired("index")
	}
	reclassifyCmd.Flags().StringVar(&reclassifyTo, "to", "", "new classification")
	_ = reclassifyCmd.MarkFlagRequired("to")
	normalizeCmd.Flags().StringArrayVar(&payerSpecs, "payer", nil, `payer contribution as "name=amount" (repeatable)`)

	rootCmd.AddCommand(addCmd, reclassifyCmd, normalizeCmd)
}

// pickTransaction loads the range into the session and returns the
// transaction at --index, using the same ordering 'finboard range' prints.
func pickTransaction(cmd *cobra.Command, a *app) (core.Transaction, error) {
	start, end, err := parseRange(mutStart, mutEnd)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := a.session.SetRange(cmd.Context(), start, end); err != nil {
		return core.Transaction{}, err
	}
	txs := a.session.Transactions()
	if mutIndex < 0 || mutIndex >= len(txs) {
		return core.Transaction{}, fmt.Errorf("index %d out of range (%d transactions)", mutIndex, len(txs))
	}
	return txs[mutIndex], nil
}

func parseTimestamp(s string) (core.Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.NewTimestamp(time.Now()), nil
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return core.NewTimestamp(t), nil
		}
	}
	return core.Timestamp{}, fmt.Errorf("cannot parse date %q", s)
}

func parsePayers(specs []string) ([]core.Payer, error) {
	var payers []core.Payer
	for _, spec := range specs {
		name, amount, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("invalid payer %q: expected \"name=amount\"", spec)
		}
		payers = append(payers, core.Payer{Name: name, Amount: amount})
	}
	return payers, nil
}
