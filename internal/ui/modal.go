package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

type promptKind int

const (
	promptImport promptKind = iota
	promptExport
)

func (k promptKind) title() string {
	if k == promptExport {
		return "Export quotes"
	}
	return "Import quotes"
}

func (k promptKind) hint() string {
	if k == promptExport {
		return ".json or .xlsx"
	}
	return ".json, .html or .htm"
}

// promptSubmitMsg carries the confirmed path out of a pathPrompt.
type promptSubmitMsg struct {
	kind promptKind
	path string
}

// pathPrompt asks for a file path for import or export.
type pathPrompt struct {
	kind  promptKind
	input textinput.Model
}

func newPathPrompt(kind promptKind, initial string) (pathPrompt, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "path/to/quotes.json"
	ti.CharLimit = 512
	ti.Width = 48
	ti.SetValue(initial)
	ti.CursorEnd()
	cmd := ti.Focus()
	return pathPrompt{kind: kind, input: ti}, cmd
}

func (p pathPrompt) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape):
			return p, nil, true
		case key.Matches(km, keys.Confirm):
			path := strings.TrimSpace(p.input.Value())
			if path == "" {
				return p, nil, false
			}
			kind := p.kind
			return p, func() tea.Msg { return promptSubmitMsg{kind: kind, path: path} }, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p pathPrompt) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(p.kind.title()))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(p.kind.hint()))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("enter") + styles.MutedText.Render(" confirm  ") +
		styles.AccentText.Render("esc") + styles.MutedText.Render(" cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(60)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
