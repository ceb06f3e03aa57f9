package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/quoter/internal/config"
	"github.com/five82/quoter/internal/prefs"
	"github.com/five82/quoter/internal/quotes"
	"github.com/five82/quoter/internal/remote"
	"github.com/five82/quoter/internal/state"
	"github.com/five82/quoter/internal/storage"
	"github.com/five82/quoter/internal/syncer"
	"github.com/five82/quoter/internal/transfer"
	"github.com/five82/quoter/internal/ui"
)

// Options configure the quoter application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/quoter/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

// Env is the wired set of components shared by the TUI and CLI commands.
type Env struct {
	Config  config.Config
	Store   *storage.FileStore
	Library *state.Library
	Syncer  *syncer.Syncer // nil when sync_url is unset
	Logger  *slog.Logger

	closeLog func() error
}

// Open loads config and quotes and builds the sync stack, restoring any
// conflicts a previous run left queued. Callers must Close it.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollEvery = time.Duration(opts.PollEvery) * time.Second
	}

	logger, closeLog, err := openLogger(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	store := storage.New(cfg.DataDir)
	list, err := store.Load()
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("load quotes: %w", err)
	}
	lib := state.NewLibrary(list, store.Save)

	env := &Env{
		Config:   cfg,
		Store:    store,
		Library:  lib,
		Logger:   logger,
		closeLog: closeLog,
	}

	if cfg.SyncEnabled() {
		client, err := remote.NewClient(cfg.SyncURL)
		if err != nil {
			_ = closeLog()
			return nil, fmt.Errorf("init sync client: %w", err)
		}
		s := syncer.New(lib, client,
			syncer.WithLogger(logger),
			syncer.WithQueueStore(storage.NewQueueFile(cfg.DataDir)))
		if err := s.Restore(); err != nil {
			_ = closeLog()
			return nil, err
		}
		env.Syncer = s
	}

	logger.Info("quoter started",
		slog.String("data", store.Path),
		slog.Int("quotes", len(list)),
		slog.Bool("sync", cfg.SyncEnabled()))
	return env, nil
}

// Close flushes and closes the activity log.
func (e *Env) Close() error {
	if e == nil || e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

// Run boots the quoter TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	uiOpts := ui.Options{
		Context:    ctx,
		Library:    env.Library,
		Picker:     quotes.NewPicker(nil),
		PollTick:   ui.DefaultUIInterval,
		ThemeName:  userPrefs.Theme,
		Category:   userPrefs.LastCategory,
		PrefsPath:  opts.PrefsPath,
		LogPath:    env.Config.LogFile,
		ExportPath: env.Config.ExportPath(transfer.DefaultExportName),
		Logger:     env.Logger,
	}

	var pollerDone <-chan struct{}
	if env.Syncer != nil {
		uiOpts.Syncer = env.Syncer
		pollerDone = StartPoller(ctx, env.Syncer, env.Config.PollEvery, env.Logger)
	}

	err = ui.Run(uiOpts)
	cancel()
	if pollerDone != nil {
		<-pollerDone
	}
	return err
}

// openLogger opens the activity log for appending. The TUI owns the
// terminal, so nothing is ever logged to stdout or stderr.
func openLogger(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler), file.Close, nil
}
