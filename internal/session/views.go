package session

import (
	"finboard/internal/core"
	"finboard/internal/report"
)

// Range returns the active date range.
func (s *Session) Range() (start, end core.Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start, s.end
}

// All returns a copy of the full working set, unfiltered.
func (s *Session) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

// Transactions returns the working set with the classification filter
// applied.
func (s *Session) Transactions() []core.Transaction {
	s.mu.Lock()
	txs := make([]core.Transaction, len(s.txs))
	copy(txs, s.txs)
	filter := s.filterCopyLocked()
	s.mu.Unlock()
	return report.ApplyFilter(txs, filter)
}

// ByClassification returns the spend-by-category series for the filtered
// set. Pie and bar charts both consume this.
func (s *Session) ByClassification() []report.ClassificationGroup {
	s.mu.Lock()
	txs := make([]core.Transaction, len(s.txs))
	copy(txs, s.txs)
	filter := s.filterCopyLocked()
	s.mu.Unlock()
	return report.ByClassification(txs, filter)
}

// ByDay returns the daily trend series for the filtered set.
func (s *Session) ByDay() []report.DayBucket {
	return report.ByDay(s.Transactions())
}

// Available returns the classifications present in the current set, sorted.
func (s *Session) Available() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.available))
	copy(out, s.available)
	return out
}

// Selected returns the currently selected classification names.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for _, name := range s.available {
		if s.filter.Includes(name) {
			names = append(names, name)
		}
	}
	return names
}

// SetFilter replaces the filter with an explicit inclusion set.
func (s *Session) SetFilter(names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = report.NewFilter(names...)
}

// Toggle flips one classification in or out of the filter.
func (s *Session) Toggle(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filter == nil {
		s.filter = report.Filter{}
	}
	if s.filter[name] {
		delete(s.filter, name)
	} else {
		s.filter[name] = true
	}
}

// SelectAll selects every available classification.
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = report.NewFilter(s.available...)
}

// ClearAll empties the selection. An empty filter set is treated as "no
// filtering" by the aggregator; the distinction is presentational.
func (s *Session) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = report.Filter{}
}

func (s *Session) filterCopyLocked() report.Filter {
	out := make(report.Filter, len(s.filter))
	for k, v := range s.filter {
		out[k] = v
	}
	return out
}
