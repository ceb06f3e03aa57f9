package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quoter/internal/logtail"
)

type logLinesMsg struct {
	lines []string
	err   error
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logLinesMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// initLogViewport initializes the log viewport.
func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-4, 1), max(m.height-5, 1))
	m.logViewport.Style = lipgloss.NewStyle()
}

// updateLogViewport resizes the viewport and refreshes its content.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	// Box inner height = content height minus top and bottom borders
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.contentHeight()-2, 1)
	m.logViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	atBottom := m.logViewport.AtBottom()
	m.logViewport.SetContent(m.renderLogContent())
	if atBottom {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.setFlash(flashError, "Read log: "+msg.err.Error())
		return
	}
	m.logLines = msg.lines
	m.updateLogViewport()
}

// openLogs switches to the log view and loads the tail.
func (m *Model) openLogs() tea.Cmd {
	m.currentView = ViewLogs
	m.logViewport.GotoBottom()
	return readLogCmd(m.logPath)
}

// handleLogsKey scrolls the log viewport. The reported bool is false for keys
// the viewport does not own.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil, true
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil, true
	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	title := "Activity Log"
	if m.logPath != "" {
		title += " · " + truncate(m.logPath, max(m.width/2, 10))
	}
	return m.renderTitledBox(title, m.logViewport.View(), m.width, m.contentHeight(), true)
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	if len(m.logLines) == 0 {
		return styles.MutedText.Render("No activity yet.")
	}
	width := max(m.width-4, 10)
	out := make([]string, 0, len(m.logLines))
	for _, line := range m.logLines {
		out = append(out, logLineStyle(styles, logLevel(line)).Render(truncate(line, width)))
	}
	return strings.Join(out, "\n")
}

// logLevel extracts the level= attribute written by slog's text handler.
func logLevel(line string) string {
	idx := strings.Index(line, "level=")
	if idx < 0 {
		return ""
	}
	rest := line[idx+len("level="):]
	if end := strings.IndexByte(rest, ' '); end >= 0 {
		rest = rest[:end]
	}
	return strings.ToUpper(rest)
}

func logLineStyle(styles Styles, level string) lipgloss.Style {
	switch {
	case strings.HasPrefix(level, "ERROR"):
		return styles.DangerText
	case strings.HasPrefix(level, "WARN"):
		return styles.WarningText
	case strings.HasPrefix(level, "DEBUG"):
		return styles.FaintText
	default:
		return styles.Text
	}
}
