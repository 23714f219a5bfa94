// Package poll watches the backend's token-status endpoint on a fixed
// interval, independently of data fetches. The snapshot it maintains is
// consumed read-only by whatever renders the re-auth banner.
package poll

import (
	"context"
	"sort"
	"sync"
	"time"

	"finboard/internal/api"
	applog "finboard/internal/log"
)

// StatusSource is the slice of the API client the watcher needs.
type StatusSource interface {
	TokenStatuses(ctx context.Context) ([]api.TokenStatus, error)
}

// Snapshot is the watcher's last observed state. A failed poll keeps the
// previous statuses and records the error alongside them.
type Snapshot struct {
	Statuses  []api.TokenStatus
	Err       error
	UpdatedAt time.Time
}

// NeedsReauth reports whether any user needs re-authentication.
func (s Snapshot) NeedsReauth() bool {
	for _, st := range s.Statuses {
		if st.NeedsReauth {
			return true
		}
	}
	return false
}

// UrgentUser returns the re-auth-needing user with the fewest hours
// remaining, or nil when nobody needs re-auth.
func (s Snapshot) UrgentUser() *api.TokenStatus {
	var urgent []api.TokenStatus
	for _, st := range s.Statuses {
		if st.NeedsReauth {
			urgent = append(urgent, st)
		}
	}
	if len(urgent) == 0 {
		return nil
	}
	sort.SliceStable(urgent, func(a, b int) bool {
		return urgent[a].HoursRemaining < urgent[b].HoursRemaining
	})
	return &urgent[0]
}

// Watcher polls token status on a fixed interval. It is an explicit
// scheduled task: Run blocks until the context is cancelled, and a single
// immediate fetch precedes the ticker loop.
type Watcher struct {
	source   StatusSource
	interval time.Duration
	logger   *applog.Logger

	mu   sync.Mutex
	snap Snapshot
}

func NewWatcher(source StatusSource, interval time.Duration, logger *applog.Logger) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Watcher{
		source:   source,
		interval: interval,
		logger:   logger.WithComponent(applog.ComponentPoll),
	}
}

// Run polls until ctx is cancelled. It never returns a poll failure: errors
// land in the snapshot and the previous statuses keep being served.
func (w *Watcher) Run(ctx context.Context) {
	w.poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Token watcher stopped")
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// Poll performs one fetch outside the ticker loop, for one-shot use.
func (w *Watcher) Poll(ctx context.Context) Snapshot {
	w.poll(ctx)
	return w.Status()
}

func (w *Watcher) poll(ctx context.Context) {
	statuses, err := w.source.TokenStatuses(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		// Keep the previous statuses; a late or failed response must not
		// blank the banner.
		w.snap.Err = err
		w.logger.Warn("Token status poll failed",
			applog.FieldOperation, applog.OpTokenPoll,
			applog.FieldError, err)
		return
	}
	w.snap = Snapshot{Statuses: statuses, UpdatedAt: time.Now()}
}

// Status returns the current snapshot.
func (w *Watcher) Status() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.snap
	out.Statuses = make([]api.TokenStatus, len(w.snap.Statuses))
	copy(out.Statuses, w.snap.Statuses)
	return out
}
