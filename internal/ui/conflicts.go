package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quoter/internal/quotes"
	"github.com/five82/quoter/internal/syncer"
)

// linesPerConflict is the rendered height of one conflict entry.
const linesPerConflict = 4

type resolveDoneMsg struct {
	id    string // empty for resolve-all
	res   syncer.Resolution
	count int
	err   error
}

func resolveCmd(ctx context.Context, s Syncer, id string, res syncer.Resolution) tea.Cmd {
	return func() tea.Msg {
		err := s.Resolve(ctx, id, res)
		return resolveDoneMsg{id: id, res: res, count: 1, err: err}
	}
}

func resolveAllCmd(ctx context.Context, s Syncer, res syncer.Resolution) tea.Cmd {
	return func() tea.Msg {
		n, err := s.ResolveAll(ctx, res)
		return resolveDoneMsg{res: res, count: n, err: err}
	}
}

// handleConflictsKey processes keys specific to the conflicts view. The
// reported bool is false when the key should fall through to global handling.
func (m Model) handleConflictsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	count := len(m.conflicts)
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
		}
		return m, nil, true
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil, true
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		return m, nil, true
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(count-1, 0)
		return m, nil, true
	case key.Matches(msg, m.keys.KeepServer):
		return m.resolveSelected(syncer.KeepServer)
	case key.Matches(msg, m.keys.KeepLocal):
		return m.resolveSelected(syncer.KeepLocal)
	case key.Matches(msg, m.keys.KeepServerAll):
		return m.resolveAll(syncer.KeepServer)
	case key.Matches(msg, m.keys.KeepLocalAll):
		return m.resolveAll(syncer.KeepLocal)
	}
	return m, nil, false
}

func (m Model) resolveSelected(res syncer.Resolution) (tea.Model, tea.Cmd, bool) {
	if m.syncer == nil || len(m.conflicts) == 0 {
		m.setFlash(flashInfo, "No conflicts to resolve")
		return m, nil, true
	}
	c := m.conflicts[min(m.selected, len(m.conflicts)-1)]
	return m, resolveCmd(m.ctx, m.syncer, c.ID, res), true
}

func (m Model) resolveAll(res syncer.Resolution) (tea.Model, tea.Cmd, bool) {
	if m.syncer == nil || len(m.conflicts) == 0 {
		m.setFlash(flashInfo, "No conflicts to resolve")
		return m, nil, true
	}
	return m, resolveAllCmd(m.ctx, m.syncer, res), true
}

func (m *Model) handleResolveDone(msg resolveDoneMsg) {
	label := "server"
	if msg.res == syncer.KeepLocal {
		label = "local"
	}
	switch {
	case errors.Is(msg.err, syncer.ErrNoConflict):
		m.setFlash(flashWarning, "Conflict already resolved")
	case msg.err != nil:
		m.setFlash(flashError, "Resolve failed: "+msg.err.Error())
	case msg.id != "":
		m.setFlash(flashSuccess, fmt.Sprintf("Kept %s copy of %s", label, shortID(msg.id)))
	default:
		m.setFlash(flashSuccess, fmt.Sprintf("Kept %s copy for %s", label, plural(msg.count, "conflict")))
	}
}

// renderConflicts renders the conflict queue.
func (m Model) renderConflicts() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	height := m.contentHeight()
	title := "Conflicts (" + fmt.Sprint(len(m.conflicts)) + ")"

	var lines []string
	switch {
	case m.syncer == nil:
		lines = append(lines, " "+bg.Render("Sync is disabled. Set sync_url in the config to enable it.", styles.MutedText))
	case len(m.conflicts) == 0:
		lines = append(lines, " "+bg.Render("No conflicts. Local and server copies agree.", styles.MutedText))
	default:
		lines = m.conflictLines(styles, bg, max(height-2, 1))
	}

	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, height, true)
}

// conflictLines renders the visible window of conflicts around the selection.
func (m Model) conflictLines(styles Styles, bg BgStyle, rows int) []string {
	visible := max(rows/linesPerConflict, 1)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := min(start+visible, len(m.conflicts))
	inner := max(m.width-16, 10)
	now := time.Now()

	var lines []string
	for i := start; i < end; i++ {
		c := m.conflicts[i]
		marker := "  "
		headStyle := styles.Text
		if i == m.selected {
			marker = "▸ "
			headStyle = styles.Selected
		}
		head := marker + padRight(shortID(c.ID), 10) + "detected " + humanizeDuration(now.Sub(c.DetectedAt)) + " ago"
		lines = append(lines, " "+bg.Render(head, headStyle))
		lines = append(lines, "    "+bg.Render("local ", styles.WarningText)+bg.Spaces(1)+
			bg.Render(truncate(quotes.Format(c.Local), inner), styles.Text))
		lines = append(lines, "    "+bg.Render("server", styles.InfoText)+bg.Spaces(1)+
			bg.Render(truncate(quotes.Format(c.Server), inner), styles.Text))
		lines = append(lines, "")
	}
	return lines
}
