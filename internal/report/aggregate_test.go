package report

import (
	"testing"
	"time"

	"finboard/internal/core"
)

func tx(classification, amount string, date time.Time) core.Transaction {
	return core.Transaction{
		Classification: classification,
		Amount:         amount,
		Receiver:       "someone",
		Date:           core.NewTimestamp(date),
	}
}

func sampleSet() []core.Transaction {
	day := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	return []core.Transaction{
		tx("Grocery", "100", day),
		tx("Fuel", "50", day),
		tx("Grocery", "25", day),
		tx("Eating Out", "1,200.50", day),
	}
}

func TestByClassificationOrderAndTotals(t *testing.T) {
	groups := ByClassification(sampleSet(), nil)

	want := []struct {
		name, total string
	}{
		{"Eating Out", "1200.5"},
		{"Grocery", "125"},
		{"Fuel", "50"},
	}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, want %d", len(groups), len(want))
	}
	for i, w := range want {
		if groups[i].Name != w.name || groups[i].Total.String() != w.total {
			t.Fatalf("group %d = %s/%s, want %s/%s", i, groups[i].Name, groups[i].Total, w.name, w.total)
		}
	}

	// Conservation: group totals sum to the set total.
	sum := groups[0].Total
	for _, g := range groups[1:] {
		sum = sum.Add(g.Total)
	}
	if !sum.Equal(Total(sampleSet())) {
		t.Fatalf("group sum %s != set total %s", sum, Total(sampleSet()))
	}
}

func TestByClassificationTieBreakIsEncounterOrder(t *testing.T) {
	day := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx("B", "10", day),
		tx("A", "10", day),
		tx("C", "10", day),
	}
	groups := ByClassification(txs, nil)
	got := []string{groups[0].Name, groups[1].Name, groups[2].Name}
	if got[0] != "B" || got[1] != "A" || got[2] != "C" {
		t.Fatalf("tie order = %v, want [B A C]", got)
	}
}

func TestByClassificationFilter(t *testing.T) {
	groups := ByClassification(sampleSet(), NewFilter("Grocery"))
	if len(groups) != 1 || groups[0].Name != "Grocery" || groups[0].Total.String() != "125" {
		t.Fatalf("filtered groups = %+v", groups)
	}
	if len(groups[0].Transactions) != 2 {
		t.Fatalf("group carries %d transactions, want 2", len(groups[0].Transactions))
	}

	// Empty filter set means no filtering.
	if got := len(ByClassification(sampleSet(), NewFilter())); got != 3 {
		t.Fatalf("empty filter produced %d groups, want 3", got)
	}
}

func TestClassifications(t *testing.T) {
	names := Classifications(sampleSet())
	want := []string{"Eating Out", "Fuel", "Grocery"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestByDay(t *testing.T) {
	txs := []core.Transaction{
		tx("Grocery", "10", time.Date(2025, 6, 13, 8, 0, 0, 0, time.UTC)),
		tx("Fuel", "20", time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC)),
		tx("Grocery", "5", time.Date(2025, 6, 13, 22, 0, 0, 0, time.UTC)),
	}
	buckets := ByDay(txs)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2 (same-day merge, sparse)", len(buckets))
	}
	if buckets[0].Day.String() != "2025-06-12" || buckets[0].Total.String() != "20" {
		t.Fatalf("bucket 0 = %v %s", buckets[0].Day, buckets[0].Total)
	}
	if buckets[1].Day.String() != "2025-06-13" || buckets[1].Total.String() != "15" {
		t.Fatalf("bucket 1 = %v %s", buckets[1].Day, buckets[1].Total)
	}
}
