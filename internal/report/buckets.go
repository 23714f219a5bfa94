package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"finboard/internal/core"
)

// DayBucket is the total spend for one UTC calendar day.
type DayBucket struct {
	Day   core.Day
	Total decimal.Decimal
}

// ByDay groups transactions by UTC calendar day for the trend series.
// Buckets are ordered ascending; days with no transactions are omitted, so
// consumers must treat the series as sparse.
func ByDay(txs []core.Transaction) []DayBucket {
	totals := make(map[core.Day]decimal.Decimal)
	for _, tx := range txs {
		day := core.DayOf(tx.Date.Time)
		totals[day] = totals[day].Add(core.ParseAmount(tx.Amount))
	}

	buckets := make([]DayBucket, 0, len(totals))
	for day, total := range totals {
		buckets = append(buckets, DayBucket{Day: day, Total: total})
	}
	sort.Slice(buckets, func(a, b int) bool {
		return buckets[a].Day.Before(buckets[b].Day)
	})
	return buckets
}
