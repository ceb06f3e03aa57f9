package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/quoter/internal/quotes"
)

// SyncStatus describes the outcome of recent sync attempts.
type SyncStatus struct {
	Enabled             bool
	LastSync            time.Time // last successful sync
	LastAttempt         time.Time
	LastError           error
	ConsecutiveFailures int
	Pending             int // queued conflicts awaiting resolution
	Added               int // from the last successful sync
	Updated             int
	Pushed              int
}

// IsOffline returns true when the endpoint has been unreachable for multiple polls.
func (s SyncStatus) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Quotes      []quotes.Quote
	Sync        SyncStatus
	LastChanged time.Time
}

// Persister saves the quote list after each mutation.
type Persister func([]quotes.Quote) error

// Library coordinates concurrent access to the quote list and sync status.
type Library struct {
	mu       sync.RWMutex
	saveMu   sync.Mutex // orders mutations with their writes to disk
	snapshot Snapshot
	persist  Persister
}

// NewLibrary builds a Library seeded with list. persist may be nil.
func NewLibrary(list []quotes.Quote, persist Persister) *Library {
	return &Library{
		snapshot: Snapshot{Quotes: quotes.Clone(list), LastChanged: time.Now()},
		persist:  persist,
	}
}

// Snapshot returns a copy of the current state.
func (l *Library) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := l.snapshot
	snap.Quotes = quotes.Clone(l.snapshot.Quotes)
	if l.snapshot.Sync.LastError != nil {
		snap.Sync.LastError = fmt.Errorf("%w", l.snapshot.Sync.LastError)
	}
	return snap
}

// Quotes returns a copy of the quote list.
func (l *Library) Quotes() []quotes.Quote {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return quotes.Clone(l.snapshot.Quotes)
}

// Get returns the quote with id.
func (l *Library) Get(id string) (quotes.Quote, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, q := range l.snapshot.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return quotes.Quote{}, false
}

// Add appends q.
func (l *Library) Add(q quotes.Quote) error {
	return l.mutate(func(list []quotes.Quote) []quotes.Quote {
		return append(list, q)
	})
}

// Append adds every entry of list in order.
func (l *Library) Append(list []quotes.Quote) error {
	if len(list) == 0 {
		return nil
	}
	return l.mutate(func(cur []quotes.Quote) []quotes.Quote {
		return append(cur, list...)
	})
}

// Import upserts list by ID: entries whose ID is already present replace the
// stored copy, the rest are appended in order.
func (l *Library) Import(list []quotes.Quote) (added, replaced int, err error) {
	if len(list) == 0 {
		return 0, 0, nil
	}
	err = l.mutate(func(cur []quotes.Quote) []quotes.Quote {
		index := make(map[string]int, len(cur))
		for i, q := range cur {
			if q.ID != "" {
				index[q.ID] = i
			}
		}
		for _, q := range list {
			if i, ok := index[q.ID]; ok && q.ID != "" {
				cur[i] = q
				replaced++
				continue
			}
			if q.ID != "" {
				index[q.ID] = len(cur)
			}
			cur = append(cur, q)
			added++
		}
		return cur
	})
	return added, replaced, err
}

// Replace swaps the whole quote list.
func (l *Library) Replace(list []quotes.Quote) error {
	return l.mutate(func([]quotes.Quote) []quotes.Quote {
		return quotes.Clone(list)
	})
}

// Upsert replaces the quote sharing q's ID, or appends q.
func (l *Library) Upsert(q quotes.Quote) error {
	return l.mutate(func(list []quotes.Quote) []quotes.Quote {
		for i := range list {
			if list[i].ID == q.ID {
				list[i] = q
				return list
			}
		}
		return append(list, q)
	})
}

// Update applies fn to the current list under the write lock. fn must not
// retain its argument.
func (l *Library) Update(fn func([]quotes.Quote) []quotes.Quote) error {
	return l.mutate(fn)
}

// RecordSync stores the outcome of a sync attempt. When err is non-nil the
// previous counters are kept but the error is recorded for visibility.
func (l *Library) RecordSync(added, updated, pushed int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	s := &l.snapshot.Sync
	s.Enabled = true
	s.LastAttempt = now
	if err != nil {
		s.LastError = err
		s.ConsecutiveFailures++
		return
	}
	s.LastError = nil
	s.LastSync = now
	s.ConsecutiveFailures = 0
	s.Added = added
	s.Updated = updated
	s.Pushed = pushed
}

// SetPending records the number of queued conflicts.
func (l *Library) SetPending(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshot.Sync.Pending = n
}

// SetSyncEnabled marks whether a sync endpoint is configured.
func (l *Library) SetSyncEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshot.Sync.Enabled = enabled
}

// mutate applies fn and persists the result. The in-memory list is updated
// even when persisting fails; the persist error is returned.
func (l *Library) mutate(fn func([]quotes.Quote) []quotes.Quote) error {
	l.saveMu.Lock()
	defer l.saveMu.Unlock()

	l.mu.Lock()
	next := fn(quotes.Clone(l.snapshot.Quotes))
	l.snapshot.Quotes = next
	l.snapshot.LastChanged = time.Now()
	persist := l.persist
	saved := quotes.Clone(next)
	l.mu.Unlock()

	if persist == nil {
		return nil
	}
	if err := persist(saved); err != nil {
		return fmt.Errorf("persist quotes: %w", err)
	}
	return nil
}
