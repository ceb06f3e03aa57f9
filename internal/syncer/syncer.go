package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/five82/quoter/internal/quotes"
	"github.com/five82/quoter/internal/remote"
	"github.com/five82/quoter/internal/state"
)

var (
	// ErrSyncInProgress is returned when Sync is called while another sync runs.
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrNoConflict is returned when resolving an ID with no queued conflict.
	ErrNoConflict = errors.New("no conflict queued for quote")
)

// Resolution selects which copy of a conflicting quote survives.
type Resolution int

const (
	// KeepServer accepts the server copy, which is already applied locally.
	KeepServer Resolution = iota
	// KeepLocal restores the local copy and pushes it to the server.
	KeepLocal
)

func (r Resolution) String() string {
	switch r {
	case KeepServer:
		return "keep-server"
	case KeepLocal:
		return "keep-local"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

// ParseResolution maps "server"/"keep-server" and "local"/"keep-local".
func ParseResolution(value string) (Resolution, error) {
	switch value {
	case "server", "keep-server", "s":
		return KeepServer, nil
	case "local", "keep-local", "l":
		return KeepLocal, nil
	}
	return 0, fmt.Errorf("unknown resolution %q (want server or local)", value)
}

// Result summarizes one sync pass.
type Result struct {
	Added     int
	Updated   int
	Conflicts int
	Pushed    int
	At        time.Time
}

// Syncer merges the library with a QuoteSource and owns the conflict queue.
type Syncer struct {
	lib    *state.Library
	source remote.QuoteSource
	store  QueueStore
	logger *slog.Logger
	now    func() time.Time

	// pass serializes sync passes and resolutions. Sync only tries it.
	pass sync.Mutex

	mu      sync.Mutex
	queue   []Conflict
	pending map[string]quotes.Quote // keep-local copies not yet accepted by the server
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Syncer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQueueStore persists the conflict queue and unpushed keep-local copies
// through store. Call Restore to load what a previous run left behind.
func WithQueueStore(store QueueStore) Option {
	return func(s *Syncer) {
		s.store = store
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Syncer) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Syncer for lib against source.
func New(lib *state.Library, source remote.QuoteSource, opts ...Option) *Syncer {
	s := &Syncer{
		lib:     lib,
		source:  source,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
		pending: make(map[string]quotes.Quote),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if lib != nil {
		lib.SetSyncEnabled(source != nil)
	}
	return s
}

// Sync runs one fetch-merge-push pass. Only one pass runs at a time; a call
// made while another pass or a resolution runs returns ErrSyncInProgress
// without touching state.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	if s.source == nil {
		return Result{}, fmt.Errorf("sync endpoint not configured")
	}
	if !s.pass.TryLock() {
		return Result{}, ErrSyncInProgress
	}
	defer s.pass.Unlock()

	res, err := s.sync(ctx)
	s.lib.RecordSync(res.Added, res.Updated, res.Pushed, err)
	s.lib.SetPending(s.queuedCount())
	if err != nil {
		s.logger.Warn("sync failed", slog.Any("error", err))
		return res, err
	}
	s.logger.Info("sync complete",
		slog.Int("added", res.Added),
		slog.Int("updated", res.Updated),
		slog.Int("conflicts", res.Conflicts),
		slog.Int("pushed", res.Pushed))
	return res, nil
}

func (s *Syncer) sync(ctx context.Context) (Result, error) {
	// Keep-local copies go first so the fetch below cannot overwrite them.
	if _, err := s.flushPending(ctx); err != nil {
		return Result{}, err
	}

	server, err := s.source.FetchQuotes(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch server quotes: %w", err)
	}

	at := s.now()
	var merged MergeResult
	if err := s.lib.Update(func(local []quotes.Quote) []quotes.Quote {
		quotes.EnsureIDs(local)
		merged = Merge(local, server)
		for i := range merged.Conflicts {
			merged.Conflicts[i].DetectedAt = at
		}
		// Queued before the server copies replace the local ones on disk.
		s.enqueue(merged.Conflicts)
		return merged.Quotes
	}); err != nil {
		return Result{}, err
	}

	for _, c := range merged.Conflicts {
		s.logger.Info("conflict queued",
			slog.String("id", c.ID),
			slog.String("local_category", c.Local.Category),
			slog.String("server_category", c.Server.Category))
	}

	res := Result{
		Added:     merged.Added,
		Updated:   merged.Updated,
		Conflicts: len(merged.Conflicts),
		At:        at,
	}

	if len(merged.LocalOnly) > 0 {
		stored, err := s.source.PushQuotes(ctx, merged.LocalOnly)
		if err != nil {
			return res, fmt.Errorf("push local quotes: %w", err)
		}
		if err := s.applyStored(stored); err != nil {
			return res, err
		}
		res.Pushed = len(stored)
	}
	return res, nil
}

// Conflicts returns a copy of the queue in detection order.
func (s *Syncer) Conflicts() []Conflict {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Conflict, len(s.queue))
	copy(out, s.queue)
	return out
}

// Resolve settles the queued conflict for id. It waits for a running sync
// pass to finish first.
func (s *Syncer) Resolve(ctx context.Context, id string, res Resolution) error {
	s.pass.Lock()
	defer s.pass.Unlock()

	c, ok := s.dequeue(id)
	if !ok {
		return fmt.Errorf("%w %q", ErrNoConflict, id)
	}
	return s.apply(ctx, []Conflict{c}, res)
}

// ResolveAll applies res to every queued conflict and reports how many were settled.
func (s *Syncer) ResolveAll(ctx context.Context, res Resolution) (int, error) {
	s.pass.Lock()
	defer s.pass.Unlock()

	s.mu.Lock()
	all := s.queue
	s.queue = nil
	if len(all) > 0 {
		s.persistLocked()
	}
	s.mu.Unlock()

	if len(all) == 0 {
		return 0, nil
	}
	return len(all), s.apply(ctx, all, res)
}

// apply runs with s.pass held.
func (s *Syncer) apply(ctx context.Context, conflicts []Conflict, res Resolution) error {
	defer s.lib.SetPending(s.queuedCount())

	for _, c := range conflicts {
		s.logger.Info("conflict resolved", slog.String("id", c.ID), slog.String("resolution", res.String()))
	}
	if res == KeepServer {
		return nil
	}

	restored := make([]quotes.Quote, 0, len(conflicts))
	for _, c := range conflicts {
		local := c.Local
		local.UpdatedAt = s.now().UTC()
		restored = append(restored, local)
	}
	if err := s.lib.Update(func(list []quotes.Quote) []quotes.Quote {
		return upsertAll(list, restored)
	}); err != nil {
		return err
	}

	s.mu.Lock()
	for _, q := range restored {
		s.pending[q.ID] = q
	}
	s.persistLocked()
	s.mu.Unlock()

	if s.source == nil {
		return nil
	}
	if _, err := s.flushPending(ctx); err != nil {
		return fmt.Errorf("local copy kept, push deferred to next sync: %w", err)
	}
	return nil
}

// flushPending pushes keep-local copies and clears those the server accepted.
// Callers hold s.pass.
func (s *Syncer) flushPending(ctx context.Context) (int, error) {
	s.mu.Lock()
	batch := make([]quotes.Quote, 0, len(s.pending))
	for _, q := range s.pending {
		batch = append(batch, q)
	}
	s.mu.Unlock()
	slices.SortFunc(batch, func(a, b quotes.Quote) int { return strings.Compare(a.ID, b.ID) })

	if len(batch) == 0 {
		return 0, nil
	}
	stored, err := s.source.PushQuotes(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("push kept local quotes: %w", err)
	}

	s.mu.Lock()
	for _, q := range batch {
		if cur, ok := s.pending[q.ID]; ok && quotes.SameContent(cur, q) {
			delete(s.pending, q.ID)
		}
	}
	s.persistLocked()
	s.mu.Unlock()

	if err := s.applyStored(stored); err != nil {
		return len(stored), err
	}
	return len(stored), nil
}

// applyStored adopts the server-stamped copies returned from a push.
func (s *Syncer) applyStored(stored []quotes.Quote) error {
	if len(stored) == 0 {
		return nil
	}
	return s.lib.Update(func(list []quotes.Quote) []quotes.Quote {
		for _, sq := range stored {
			for i := range list {
				if list[i].ID == sq.ID && quotes.SameContent(list[i], sq) {
					list[i].UpdatedAt = sq.UpdatedAt
				}
			}
		}
		return list
	})
}

// enqueue adds conflicts, replacing any queued entry for the same ID in place.
func (s *Syncer) enqueue(conflicts []Conflict) {
	if len(conflicts) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range conflicts {
		replaced := false
		for i := range s.queue {
			if s.queue[i].ID == c.ID {
				// Keep the original local copy; the user's edit is what matters.
				c.Local = s.queue[i].Local
				s.queue[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			s.queue = append(s.queue, c)
		}
	}
	s.persistLocked()
}

func (s *Syncer) dequeue(id string) (Conflict, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.queue {
		if c.ID == id {
			s.queue = append(s.queue[:i:i], s.queue[i+1:]...)
			s.persistLocked()
			return c, true
		}
	}
	return Conflict{}, false
}

// PendingPushes reports keep-local copies the server has not accepted yet.
func (s *Syncer) PendingPushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Syncer) queuedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func upsertAll(list, items []quotes.Quote) []quotes.Quote {
	for _, q := range items {
		found := false
		for i := range list {
			if list[i].ID == q.ID {
				list[i] = q
				found = true
				break
			}
		}
		if !found {
			list = append(list, q)
		}
	}
	return list
}
