package app

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/quoter/internal/mockapi"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOpen_WithoutSyncSeedsDefaults(t *testing.T) {
	dataDir := t.TempDir()
	cfgPath := writeConfig(t, "data_dir = \""+dataDir+"\"\n")

	env, err := Open(Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer env.Close()

	if env.Syncer != nil {
		t.Fatalf("Syncer = non-nil, want nil without sync_url")
	}
	if got := len(env.Library.Quotes()); got != 4 {
		t.Fatalf("quotes = %d, want 4 seed quotes", got)
	}
	if env.Library.Snapshot().Sync.Enabled {
		t.Fatalf("sync reported enabled")
	}

	data, err := os.ReadFile(env.Config.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "quoter started") {
		t.Fatalf("log missing start record: %q", data)
	}
}

func TestOpen_PollOverride(t *testing.T) {
	cfgPath := writeConfig(t, "data_dir = \""+t.TempDir()+"\"\n")
	env, err := Open(Options{ConfigPath: cfgPath, PollEvery: 7})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer env.Close()
	if env.Config.PollEvery != 7*time.Second {
		t.Fatalf("PollEvery = %v, want 7s", env.Config.PollEvery)
	}
}

func TestOpen_CorruptQuotesFails(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "quotes.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfgPath := writeConfig(t, "data_dir = \""+dataDir+"\"\n")
	if _, err := Open(Options{ConfigPath: cfgPath}); err == nil {
		t.Fatalf("Open returned nil error for corrupt quotes file")
	}
}

func TestOpen_SyncAgainstMockServer(t *testing.T) {
	srv := httptest.NewServer(mockapi.New(nil).Handler())
	defer srv.Close()

	dataDir := t.TempDir()
	cfgPath := writeConfig(t, "data_dir = \""+dataDir+"\"\nsync_url = \""+srv.URL+"\"\n")
	env, err := Open(Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer env.Close()

	if env.Syncer == nil {
		t.Fatalf("Syncer = nil, want one with sync_url set")
	}
	if _, err := env.Syncer.Sync(t.Context()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if status := env.Library.Snapshot().Sync; status.LastSync.IsZero() || status.LastError != nil {
		t.Fatalf("sync status = %#v", status)
	}

	// The merged list is persisted through the store.
	reloaded, err := env.Store.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded) != 4 {
		t.Fatalf("reloaded = %d quotes, want 4", len(reloaded))
	}
}

func TestOpen_RestoresQueuedConflicts(t *testing.T) {
	server := mockapi.New(nil)
	srv := httptest.NewServer(server.Handler())
	defer srv.Close()

	dataDir := t.TempDir()
	cfgPath := writeConfig(t, "data_dir = \""+dataDir+"\"\nsync_url = \""+srv.URL+"\"\n")

	first, err := Open(Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := first.Syncer.Sync(t.Context()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if _, err := server.Edit("seed-4", "Server edit.", "Creativity"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if _, err := first.Syncer.Sync(t.Context()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(first.Syncer.Conflicts()) != 1 {
		t.Fatalf("conflicts = %d, want 1", len(first.Syncer.Conflicts()))
	}
	_ = first.Close()

	second, err := Open(Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}
	defer second.Close()

	conflicts := second.Syncer.Conflicts()
	if len(conflicts) != 1 || conflicts[0].ID != "seed-4" {
		t.Fatalf("restored conflicts = %#v, want seed-4", conflicts)
	}
	if conflicts[0].Local.Text != "Creativity is intelligence having fun." {
		t.Fatalf("restored local copy = %q", conflicts[0].Local.Text)
	}
	if second.Library.Snapshot().Sync.Pending != 1 {
		t.Fatalf("Pending = %d, want 1", second.Library.Snapshot().Sync.Pending)
	}
}

func TestOpen_CorruptConflictQueueFails(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "conflicts.json"), []byte("[nope"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfgPath := writeConfig(t, "data_dir = \""+dataDir+"\"\nsync_url = \"http://127.0.0.1:1\"\n")
	if _, err := Open(Options{ConfigPath: cfgPath}); err == nil {
		t.Fatalf("Open returned nil error for corrupt conflicts file")
	}
}
