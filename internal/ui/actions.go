package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quoter/internal/prefs"
	"github.com/five82/quoter/internal/state"
	"github.com/five82/quoter/internal/syncer"
	"github.com/five82/quoter/internal/transfer"
)

type syncDoneMsg struct {
	result syncer.Result
	err    error
}

type importDoneMsg struct {
	path     string
	added    int
	replaced int
	skipped  int
	err      error
}

type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// handleKey processes keyboard input. Overlays and input views get the key
// first, then view-specific bindings, then global ones.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	switch m.currentView {
	case ViewAdd:
		return m.handleAddKey(msg)
	case ViewConflicts:
		if next, cmd, handled := m.handleConflictsKey(msg); handled {
			return next, cmd
		}
	case ViewLogs:
		if next, cmd, handled := m.handleLogsKey(msg); handled {
			return next, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			m.logger.Warn("save theme failed", slog.Any("error", err))
		}
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewQuote
		return m, nil

	case key.Matches(msg, m.keys.NewQuote):
		m.currentView = ViewQuote
		m.showNewQuote()
		return m, nil

	case key.Matches(msg, m.keys.NextCategory):
		m.currentView = ViewQuote
		m.cycleCategory(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevCategory):
		m.currentView = ViewQuote
		m.cycleCategory(-1)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		return m, m.openAddForm()

	case key.Matches(msg, m.keys.ViewConflicts):
		m.currentView = ViewConflicts
		return m, fetchSnapshotCmd(m.lib, m.syncer)

	case key.Matches(msg, m.keys.ViewLogs):
		return m, m.openLogs()

	case key.Matches(msg, m.keys.SyncNow):
		return m.startSync()

	case key.Matches(msg, m.keys.Import):
		prompt, cmd := newPathPrompt(promptImport, "")
		m.modal = prompt
		return m, cmd

	case key.Matches(msg, m.keys.Export):
		prompt, cmd := newPathPrompt(promptExport, m.exportPath)
		m.modal = prompt
		return m, cmd
	}

	return m, nil
}

// startSync kicks off a manual sync unless one is already running.
func (m Model) startSync() (tea.Model, tea.Cmd) {
	if m.syncer == nil {
		m.setFlash(flashWarning, "Sync is disabled (set sync_url in the config)")
		return m, nil
	}
	if m.syncing {
		m.setFlash(flashInfo, "Sync already running")
		return m, nil
	}
	m.syncing = true
	m.setFlash(flashInfo, "Syncing...")
	return m, syncCmd(m.ctx, m.syncer)
}

func syncCmd(ctx context.Context, s Syncer) tea.Cmd {
	return func() tea.Msg {
		res, err := s.Sync(ctx)
		return syncDoneMsg{result: res, err: err}
	}
}

func (m *Model) handleSyncDone(msg syncDoneMsg) {
	switch {
	case errors.Is(msg.err, syncer.ErrSyncInProgress):
		m.setFlash(flashInfo, "Background sync in progress, try again shortly")
	case msg.err != nil:
		m.setFlash(flashError, "Sync failed: "+msg.err.Error())
	case msg.result.Conflicts > 0:
		m.setFlash(flashWarning, fmt.Sprintf("Synced with %s (press x to review)", plural(msg.result.Conflicts, "conflict")))
	default:
		r := msg.result
		m.setFlash(flashSuccess, fmt.Sprintf("Synced: %d added, %d updated, %d pushed", r.Added, r.Updated, r.Pushed))
	}
}

func (m Model) handlePromptSubmit(msg promptSubmitMsg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case promptExport:
		return m, exportCmd(m.lib, msg.path)
	default:
		return m, importCmd(m.lib, msg.path)
	}
}

func importCmd(lib *state.Library, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := transfer.ImportFile(path)
		if err != nil {
			return importDoneMsg{path: path, err: err}
		}
		added, replaced, err := lib.Import(res.Quotes)
		return importDoneMsg{path: path, added: added, replaced: replaced, skipped: res.Skipped, err: err}
	}
}

func exportCmd(lib *state.Library, path string) tea.Cmd {
	return func() tea.Msg {
		list := lib.Quotes()
		err := transfer.ExportFile(path, list)
		return exportDoneMsg{path: path, count: len(list), err: err}
	}
}

func (m *Model) handleImportDone(msg importDoneMsg) {
	if msg.err != nil && msg.added+msg.replaced == 0 {
		m.logger.Warn("import failed", slog.String("path", msg.path), slog.Any("error", msg.err))
		m.setFlash(flashError, "Import failed: "+msg.err.Error())
		return
	}
	m.logger.Info("quotes imported",
		slog.String("path", msg.path),
		slog.Int("added", msg.added),
		slog.Int("replaced", msg.replaced),
		slog.Int("skipped", msg.skipped))

	text := fmt.Sprintf("Quotes imported successfully! %d added, %d updated", msg.added, msg.replaced)
	if msg.skipped > 0 {
		text += fmt.Sprintf(", %d skipped", msg.skipped)
	}
	if msg.err != nil {
		m.setFlash(flashWarning, text+" (not saved: "+msg.err.Error()+")")
		return
	}
	m.setFlash(flashSuccess, text)
}

func (m *Model) handleExportDone(msg exportDoneMsg) {
	if msg.err != nil {
		m.logger.Warn("export failed", slog.String("path", msg.path), slog.Any("error", msg.err))
		m.setFlash(flashError, "Export failed: "+msg.err.Error())
		return
	}
	m.logger.Info("quotes exported", slog.String("path", msg.path), slog.Int("count", msg.count))
	m.setFlash(flashSuccess, fmt.Sprintf("Exported %s to %s", plural(msg.count, "quote"), msg.path))
}
