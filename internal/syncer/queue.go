package syncer

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/five82/quoter/internal/quotes"
)

// QueueState is what a Syncer keeps across runs: conflicts awaiting a
// decision and keep-local copies the server has not accepted yet.
type QueueState struct {
	Conflicts []Conflict     `json:"conflicts"`
	Pending   []quotes.Quote `json:"pending"`
}

// QueueStore loads and saves QueueState.
type QueueStore interface {
	LoadQueue() (QueueState, error)
	SaveQueue(QueueState) error
}

// Restore replaces the in-memory queue with the stored one. Without a
// QueueStore it does nothing.
func (s *Syncer) Restore() error {
	if s.store == nil {
		return nil
	}
	st, err := s.store.LoadQueue()
	if err != nil {
		return fmt.Errorf("load conflict queue: %w", err)
	}

	s.mu.Lock()
	s.queue = nil
	for _, c := range st.Conflicts {
		if c.ID != "" {
			s.queue = append(s.queue, c)
		}
	}
	s.pending = make(map[string]quotes.Quote, len(st.Pending))
	for _, q := range st.Pending {
		if q.ID != "" {
			s.pending[q.ID] = q
		}
	}
	queued, pending := len(s.queue), len(s.pending)
	s.mu.Unlock()

	if s.lib != nil {
		s.lib.SetPending(queued)
	}
	if queued > 0 || pending > 0 {
		s.logger.Info("conflict queue restored", slog.Int("conflicts", queued), slog.Int("pending", pending))
	}
	return nil
}

// persistLocked saves the queue and pending copies. s.mu must be held.
// A failed save is logged; the in-memory queue stays authoritative.
func (s *Syncer) persistLocked() {
	if s.store == nil {
		return
	}
	st := QueueState{
		Conflicts: slices.Clone(s.queue),
		Pending:   make([]quotes.Quote, 0, len(s.pending)),
	}
	if st.Conflicts == nil {
		st.Conflicts = []Conflict{}
	}
	for _, q := range s.pending {
		st.Pending = append(st.Pending, q)
	}
	slices.SortFunc(st.Pending, func(a, b quotes.Quote) int { return strings.Compare(a.ID, b.ID) })

	if err := s.store.SaveQueue(st); err != nil {
		s.logger.Warn("save conflict queue failed", slog.Any("error", err))
	}
}
