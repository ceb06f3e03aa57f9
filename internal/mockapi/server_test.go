package mockapi

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/five82/quoter/internal/quotes"
	"github.com/five82/quoter/internal/remote"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestServer_ListAndUpsertThroughClient(t *testing.T) {
	srv := New(nil, WithClock(fixedClock))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := remote.NewClient(ts.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	list, err := c.FetchQuotes(ctx)
	if err != nil {
		t.Fatalf("FetchQuotes: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("FetchQuotes returned %d quotes, want 4", len(list))
	}

	stored, err := c.PushQuotes(ctx, []quotes.Quote{
		{ID: "seed-1", Text: "Edited locally", Category: "Motivation"},
		{Text: "Brand new", Category: "Fresh"},
		{Text: "   ", Category: "Invalid"},
	})
	if err != nil {
		t.Fatalf("PushQuotes: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("PushQuotes stored %d, want 2 (invalid skipped)", len(stored))
	}
	if stored[1].ID == "" {
		t.Fatalf("server should assign an ID to new quotes")
	}
	if !stored[0].UpdatedAt.Equal(fixedClock()) {
		t.Fatalf("UpdatedAt = %v, want %v", stored[0].UpdatedAt, fixedClock())
	}

	all := srv.Quotes()
	if len(all) != 5 || all[0].Text != "Edited locally" {
		t.Fatalf("server quotes = %#v", all)
	}
}

func TestServer_EditEndpoint(t *testing.T) {
	srv := New(nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	body := strings.NewReader(`{"text":"Server wins","category":"Remote"}`)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/quotes/seed-2", body)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200", resp.StatusCode)
	}
	if got := srv.Quotes()[1]; got.Text != "Server wins" || got.Category != "Remote" {
		t.Fatalf("server quote = %#v", got)
	}

	req, _ = http.NewRequest(http.MethodPut, ts.URL+"/quotes/missing", strings.NewReader(`{"text":"a","category":"b"}`))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT missing: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("PUT missing status = %d, want 404", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodPut, ts.URL+"/quotes/seed-1", strings.NewReader(`{"text":"","category":"b"}`))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT invalid: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("PUT invalid status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_RejectsBadJSON(t *testing.T) {
	ts := httptest.NewServer(New(nil).Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL+"/quotes", "application/json", strings.NewReader("{nope"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(nil).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("GET healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not stop after cancel")
	}
}
