// Package mockapi implements the in-memory quote endpoint used for sync demos
// and tests. It is intentionally naive: last write wins on the server and no
// history is kept.
package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/five82/quoter/internal/quotes"
	"github.com/five82/quoter/internal/remote"
)

// Server holds the server-side quote list.
type Server struct {
	mu     sync.RWMutex
	quotes []quotes.Quote
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger routes request logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the timestamp source used when storing quotes.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// New builds a Server seeded with seed. A nil seed uses the default quotes.
func New(seed []quotes.Quote, opts ...Option) *Server {
	if seed == nil {
		seed = quotes.Defaults()
	}
	s := &Server{
		quotes: quotes.Clone(seed),
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	quotes.EnsureIDs(s.quotes)
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /quotes", s.handleList)
	mux.HandleFunc("POST /quotes", s.handleUpsert)
	mux.HandleFunc("PUT /quotes/{id}", s.handleEdit)
	return mux
}

// Quotes returns a copy of the server list.
func (s *Server) Quotes() []quotes.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return quotes.Clone(s.quotes)
}

// Edit changes a stored quote in place, as another client would.
func (s *Server) Edit(id, text, category string) (quotes.Quote, error) {
	q := quotes.Quote{ID: id, Text: text, Category: category}
	if err := quotes.Validate(&q); err != nil {
		return quotes.Quote{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotes {
		if s.quotes[i].ID == id {
			q.UpdatedAt = s.now().UTC()
			s.quotes[i] = q
			return q, nil
		}
	}
	return quotes.Quote{}, fmt.Errorf("quote %q not found", id)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, remote.QuoteList{Quotes: s.Quotes()})
}

func (s *Server) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var payload remote.QuoteList
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	stored := make([]quotes.Quote, 0, len(payload.Quotes))
	s.mu.Lock()
	for _, q := range payload.Quotes {
		if err := quotes.Validate(&q); err != nil {
			continue
		}
		if q.ID == "" {
			q.ID = quotes.NewID()
		}
		q.UpdatedAt = s.now().UTC()
		s.upsertLocked(q)
		stored = append(stored, q)
	}
	s.mu.Unlock()

	s.logger.Info("quotes upserted", slog.Int("received", len(payload.Quotes)), slog.Int("stored", len(stored)))
	writeJSON(w, http.StatusOK, remote.QuoteList{Quotes: stored})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var q quotes.Quote
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	updated, err := s.Edit(id, q.Text, q.Category)
	if err != nil {
		if errors.Is(err, quotes.ErrMissingFields) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.Info("quote edited", slog.String("id", id))
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) upsertLocked(q quotes.Quote) {
	for i := range s.quotes {
		if s.quotes[i].ID == q.ID {
			s.quotes[i] = q
			return
		}
	}
	s.quotes = append(s.quotes, q)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves the endpoint on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock sync endpoint listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
