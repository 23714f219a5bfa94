// Package report derives chart series from a transaction set: spend grouped
// by classification and spend grouped by calendar day. Both the pie and bar
// visualizations consume the same classification groups, so there is a single
// source of truth for "spend by category".
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// ClassificationGroup is the aggregated spend for one classification,
// together with the transactions that produced it.
type ClassificationGroup struct {
	Name         string
	Total        decimal.Decimal
	Transactions []core.Transaction
}

// Filter is an inclusion set of classification names. An empty or nil filter
// includes everything; "select none" versus "select all" is a presentation
// distinction handled upstream.
type Filter map[string]bool

// NewFilter builds an inclusion set from the given names.
func NewFilter(names ...string) Filter {
	f := make(Filter, len(names))
	for _, n := range names {
		f[n] = true
	}
	return f
}

// Includes reports whether a classification passes the filter.
func (f Filter) Includes(classification string) bool {
	if len(f) == 0 {
		return true
	}
	return f[classification]
}

// ByClassification groups transactions by classification and sums their
// parsed amounts. Groups are ordered by total descending; equal totals keep
// first-encountered order. Classifications with no matching transactions do
// not appear.
func ByClassification(txs []core.Transaction, filter Filter) []ClassificationGroup {
	index := make(map[string]int)
	var groups []ClassificationGroup

	for _, tx := range txs {
		if !filter.Includes(tx.Classification) {
			continue
		}
		i, ok := index[tx.Classification]
		if !ok {
			i = len(groups)
			index[tx.Classification] = i
			groups = append(groups, ClassificationGroup{Name: tx.Classification, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(core.ParseAmount(tx.Amount))
		groups[i].Transactions = append(groups[i].Transactions, tx)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Total.GreaterThan(groups[b].Total)
	})
	return groups
}

// Total sums the parsed amounts of the given transactions.
func Total(txs []core.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(core.ParseAmount(tx.Amount))
	}
	return sum
}

// Classifications returns the distinct classification names in the set,
// sorted alphabetically. This is what the filter UI offers.
func Classifications(txs []core.Transaction) []string {
	seen := make(map[string]bool)
	var names []string
	for _, tx := range txs {
		if !seen[tx.Classification] {
			seen[tx.Classification] = true
			names = append(names, tx.Classification)
		}
	}
	sort.Strings(names)
	return names
}

// ApplyFilter returns the transactions whose classification passes the
// filter, preserving order.
func ApplyFilter(txs []core.Transaction, filter Filter) []core.Transaction {
	if len(filter) == 0 {
		return txs
	}
	var out []core.Transaction
	for _, tx := range txs {
		if filter.Includes(tx.Classification) {
			out = append(out, tx)
		}
	}
	return out
}
