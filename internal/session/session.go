// Package session keeps the client-held transaction set and its derived
// views consistent with the backend. It performs no optimistic updates:
// every mutation is round-tripped through the backend and followed by a
// re-fetch of the active date range, because backend-computed fields (the
// persisted original amount, the reduced net amount) are not reliably
// derivable client-side after the first normalization.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"finboard/internal/api"
	"finboard/internal/core"
	applog "finboard/internal/log"
	"finboard/internal/report"
)

var (
	// ErrInFlight rejects a duplicate submission of an action that has not
	// completed yet. Distinct actions may overlap.
	ErrInFlight = errors.New("action already in flight")

	// ErrNoRange means no date range has been selected yet.
	ErrNoRange = errors.New("no date range selected")
)

// Backend is the slice of the API client the session needs.
type Backend interface {
	Transactions(ctx context.Context, start, end core.Day) ([]core.Transaction, error)
	AddTransaction(ctx context.Context, tx core.Transaction) error
	Reclassify(ctx context.Context, original core.Transaction, newClassification string) error
	Normalize(ctx context.Context, n core.Normalization) (*core.Transaction, error)
}

var _ Backend = (*api.Client)(nil)

const (
	opFetch      = "fetch"
	opAdd        = "add"
	opReclassify = "reclassify"
	opNormalize  = "normalize"
)

// Session is the reconciler for one dashboard view: the working transaction
// set for the active date range, the classification filter, and per-action
// in-flight guards. All methods are safe for concurrent use; network calls
// run outside the lock so the session stays responsive while a call is
// pending.
type Session struct {
	backend Backend
	logger  *applog.Logger

	mu         sync.Mutex
	start, end core.Day
	txs        []core.Transaction
	available  []string
	filter     report.Filter
	inflight   map[string]bool

	// Monotonic fetch sequencing: a response is applied only if no response
	// from a later-started fetch has been applied already, so a slow stale
	// fetch can never overwrite fresher data.
	fetchSeq   uint64
	appliedSeq uint64
}

func New(backend Backend, logger *applog.Logger) *Session {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Session{
		backend:  backend,
		logger:   logger.WithComponent(applog.ComponentSession),
		inflight: make(map[string]bool),
	}
}

func (s *Session) begin(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[op] {
		return fmt.Errorf("%s: %w", op, ErrInFlight)
	}
	s.inflight[op] = true
	return nil
}

func (s *Session) finish(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, op)
}

// SetRange selects a new active date range and fetches it.
func (s *Session) SetRange(ctx context.Context, start, end core.Day) error {
	if start.IsZero() || end.IsZero() {
		return ErrNoRange
	}
	if end.Before(start) {
		return fmt.Errorf("range end %s before start %s", end, start)
	}
	s.mu.Lock()
	s.start, s.end = start, end
	s.mu.Unlock()
	return s.Refresh(ctx)
}

// Refresh re-fetches the active date range. On failure the previous
// transaction set keeps being served, stale but consistent.
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.begin(opFetch); err != nil {
		return err
	}
	defer s.finish(opFetch)
	return s.fetch(ctx)
}

// fetch is Refresh without the in-flight guard; mutations use it so their
// follow-up re-fetch cannot collide with the guard they do not hold.
func (s *Session) fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.start.IsZero() || s.end.IsZero() {
		s.mu.Unlock()
		return ErrNoRange
	}
	s.fetchSeq++
	seq := s.fetchSeq
	start, end := s.start, s.end
	s.mu.Unlock()

	txs, err := s.backend.Transactions(ctx, start, end)
	if err != nil {
		s.logger.ErrorContext(ctx, "Refresh failed, keeping previous set",
			applog.FieldOperation, applog.OpFetch,
			applog.FieldStartDate, start.String(),
			applog.FieldEndDate, end.String(),
			applog.FieldError, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.appliedSeq {
		s.logger.Debug("Discarding stale fetch response",
			applog.FieldSequence, seq,
			applog.FieldCount, len(txs))
		return nil
	}
	s.appliedSeq = seq
	s.txs = txs
	s.reconcileFilterLocked()

	s.logger.InfoContext(ctx, "Transaction set refreshed",
		applog.FieldStartDate, start.String(),
		applog.FieldEndDate, end.String(),
		applog.FieldCount, len(txs))
	return nil
}

// reconcileFilterLocked resets the filter to all-available-selected whenever
// the available classification set changes. Selections are not sticky across
// refreshes that change the set.
func (s *Session) reconcileFilterLocked() {
	names := report.Classifications(s.txs)
	if equalStrings(names, s.available) {
		return
	}
	s.available = names
	s.filter = report.NewFilter(names...)
}

// Add validates and submits a manually entered transaction, then re-fetches.
// Validation failures block submission before any network call.
func (s *Session) Add(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := s.begin(opAdd); err != nil {
		return err
	}
	defer s.finish(opAdd)

	if err := s.backend.AddTransaction(ctx, tx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Transaction added",
		applog.FieldOperation, applog.OpAdd,
		applog.FieldReceiver, tx.Receiver,
		applog.FieldClassification, tx.Classification)
	return s.fetch(ctx)
}

// Reclassify assigns a new classification to an existing transaction, then
// re-fetches.
func (s *Session) Reclassify(ctx context.Context, original core.Transaction, newClassification string) error {
	if newClassification == "" {
		return core.ErrEmptyClassification
	}
	if err := s.begin(opReclassify); err != nil {
		return err
	}
	defer s.finish(opReclassify)

	if err := s.backend.Reclassify(ctx, original, newClassification); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Transaction reclassified",
		applog.FieldOperation, applog.OpReclassify,
		applog.FieldClassification, newClassification)
	return s.fetch(ctx)
}

// Normalize computes the payer split for a transaction, submits it, and
// re-fetches on confirmation. On failure nothing local changes, so the
// caller can present the same input again. The computed normalization is
// returned either way for display.
func (s *Session) Normalize(ctx context.Context, tx core.Transaction, payers []core.Payer) (core.Normalization, error) {
	n := core.BuildNormalization(tx, payers)
	if err := s.begin(opNormalize); err != nil {
		return n, err
	}
	defer s.finish(opNormalize)

	if _, err := s.backend.Normalize(ctx, n); err != nil {
		return n, err
	}
	s.logger.InfoContext(ctx, "Transaction normalized",
		applog.FieldOperation, applog.OpNormalize,
		applog.FieldAmount, n.Net.String())
	return n, s.fetch(ctx)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
