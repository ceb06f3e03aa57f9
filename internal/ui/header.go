package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quoter/internal/state"
)

// renderHeader renders the status bar: library size, selection and sync state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("quoter", styles.Logo),
		bg.Render(plural(len(m.snapshot.Quotes), "quote"), styles.Text),
		bg.Render(categoryLabel(m.category), styles.AccentText),
	}

	text, kind := syncStatusText(m.snapshot.Sync, m.syncing, time.Now())
	parts = append(parts, bg.Render(text, flashStyle(styles, kind)))

	if n := len(m.conflicts); n > 0 {
		parts = append(parts, bg.Render(plural(n, "conflict"), styles.WarningText.Bold(true)))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// syncStatusText summarizes sync health for the header.
func syncStatusText(s state.SyncStatus, syncing bool, now time.Time) (string, flashKind) {
	switch {
	case !s.Enabled:
		return "sync off", flashInfo
	case syncing:
		return "syncing...", flashInfo
	case s.IsOffline():
		return fmt.Sprintf("offline (%d failures)", s.ConsecutiveFailures), flashError
	case s.LastError != nil:
		return "sync error: " + truncate(s.LastError.Error(), 40), flashWarning
	case s.LastSync.IsZero():
		return "not synced yet", flashInfo
	}
	age := now.Sub(s.LastSync)
	if age < time.Second {
		return "synced just now", flashSuccess
	}
	return "synced " + humanizeDuration(age) + " ago", flashSuccess
}

func flashStyle(styles Styles, kind flashKind) lipgloss.Style {
	switch kind {
	case flashSuccess:
		return styles.SuccessText
	case flashWarning:
		return styles.WarningText
	case flashError:
		return styles.DangerText
	default:
		return styles.MutedText
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewAdd:
		commands = []cmd{
			{"tab", "Next field"},
			{"enter", "Add"},
			{"esc", "Back"},
		}
	case ViewConflicts:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"s", "Keep server"},
			{"l", "Keep local"},
			{"S/L", "All"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default: // ViewQuote
		commands = []cmd{
			{"n", "New quote"},
			{"c/C", "Category"},
			{"a", "Add"},
			{"r", "Sync"},
			{"x", "Conflicts"},
			{"i/o", "Import/Export"},
			{"L", "Log"},
			{"?", "More"},
		}
	}

	if m.width > 0 && m.width < LayoutCompactWidth && len(commands) > 4 {
		commands = append(commands[:3:3], commands[len(commands)-1])
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
