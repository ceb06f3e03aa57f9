package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Quote actions
	NewQuote     key.Binding
	NextCategory key.Binding
	PrevCategory key.Binding
	Add          key.Binding
	SyncNow      key.Binding
	Import       key.Binding
	Export       key.Binding

	// View switching
	ViewConflicts key.Binding
	ViewLogs      key.Binding

	// Conflict actions
	KeepServer    key.Binding
	KeepLocal     key.Binding
	KeepServerAll key.Binding
	KeepLocalAll  key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Form/input
	NextField key.Binding
	PrevField key.Binding
	Confirm   key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to quote"),
		),

		// Quote actions
		NewQuote: key.NewBinding(
			key.WithKeys("n", " "),
			key.WithHelp("n/Space", "New quote"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Previous category"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add quote"),
		),
		SyncNow: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Sync now"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Import file"),
		),
		Export: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Export file"),
		),

		// View switching
		ViewConflicts: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Conflicts"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Activity log"),
		),

		// Conflict actions
		KeepServer: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Keep server copy"),
		),
		KeepLocal: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Keep local copy"),
		),
		KeepServerAll: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Keep server for all"),
		),
		KeepLocalAll: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Keep local for all"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),

		// Form/input
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Quote
		{k.NewQuote, k.NextCategory, k.PrevCategory, k.Add},
		// Sync
		{k.SyncNow, k.ViewConflicts, k.KeepServer, k.KeepLocal, k.KeepServerAll, k.KeepLocalAll},
		// Files
		{k.Import, k.Export, k.ViewLogs},
		// General
		{k.CycleTheme, k.Escape, k.Help, k.Quit},
	}
}
