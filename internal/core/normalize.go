package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Normalization is the derived result of splitting a transaction's gross
// amount across payer contributions. It is computed locally for display and
// for building the backend request; nothing is mutated until the backend
// confirms and the transaction set is refreshed.
type Normalization struct {
	// Original is the transaction with OriginalAmount guaranteed populated.
	// The backend persists it on first normalization so the gross amount is
	// never recomputed from an already-reduced net amount.
	Original Transaction

	// OriginalAmount is the gross spend before any payer-split reduction.
	OriginalAmount decimal.Decimal

	// PaidToMe is the sum of valid payer contributions.
	PaidToMe decimal.Decimal

	// Net is OriginalAmount minus PaidToMe: the transaction's new amount.
	Net decimal.Decimal

	// Payers holds only the valid entries, in input order.
	Payers []Payer
}

// GrossAmount resolves a transaction's original amount. A stored
// OriginalAmount always wins; otherwise the gross is recovered as the current
// net amount plus whatever was already reimbursed.
func (t Transaction) GrossAmount() decimal.Decimal {
	if strings.TrimSpace(t.OriginalAmount) != "" {
		return ParseAmount(t.OriginalAmount)
	}
	return ParseAmount(t.Amount).Add(ParseAmount(t.PaidToMe))
}

// ValidPayers filters out entries whose name or amount is blank after
// trimming. Only these contribute to totals or travel to the backend.
func ValidPayers(payers []Payer) []Payer {
	var valid []Payer
	for _, p := range payers {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Amount) == "" {
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

// PayerTotal sums the parsed amounts of the valid payers.
func PayerTotal(payers []Payer) decimal.Decimal {
	total := decimal.Zero
	for _, p := range ValidPayers(payers) {
		total = total.Add(ParseAmount(p.Amount))
	}
	return total
}

// BuildNormalization computes the net amount for a transaction given a set
// of payer contributions and returns everything the backend request needs.
func BuildNormalization(tx Transaction, payers []Payer) Normalization {
	gross := tx.GrossAmount()
	valid := ValidPayers(payers)
	paid := PayerTotal(valid)

	original := tx
	if strings.TrimSpace(original.OriginalAmount) == "" {
		original.OriginalAmount = gross.String()
	}

	return Normalization{
		Original:       original,
		OriginalAmount: gross,
		PaidToMe:       paid,
		Net:            gross.Sub(paid),
		Payers:         valid,
	}
}
