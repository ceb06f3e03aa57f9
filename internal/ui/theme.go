package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background string // behind modals
	Surface    string // header and command bar
	SurfaceAlt string // unfocused panels
	FocusBg    string // focused panel

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// CategoryColors are handed out by category position and wrap.
	CategoryColors []string
}

// Styles builds the text styles for t.
func (t Theme) Styles() Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header:   fg(t.Text).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		Logo:     fg(t.Warning).Bold(true),
		Selected: fg(t.SelectionText).Background(lipgloss.Color(t.SelectionBg)),

		categoryColors: t.CategoryColors,
		background:     t.Background,
		muted:          t.Muted,
	}
}

// Styles holds the styles views render with.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style

	categoryColors []string
	background     string
	muted          string
}

func (s *Styles) all() []*lipgloss.Style {
	return []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.InfoText,
		&s.Header, &s.Logo, &s.Selected,
	}
}

// CategoryColor returns the chip color for the category at position idx.
// Negative positions (the "all" entry) use the muted color.
func (s Styles) CategoryColor(idx int) string {
	if idx < 0 || len(s.categoryColors) == 0 {
		return s.muted
	}
	return s.categoryColors[idx%len(s.categoryColors)]
}

// CategoryStyle returns a badge style for the category at position idx.
func (s Styles) CategoryStyle(idx int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(s.CategoryColor(idx))).
		Padding(0, 1)
}

// WithBackground returns a copy of s with every style painted on color, so
// rendered text never falls back to the terminal background.
func (s Styles) WithBackground(color string) Styles {
	bg := lipgloss.Color(color)
	for _, st := range s.all() {
		*st = st.Background(bg)
	}
	return s
}

var themeOrder = []string{"Nightfox", "Slate"}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

// GetTheme returns the named theme, or Nightfox for unknown names.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[themeOrder[0]]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns the themes in cycle order.
func ThemeNames() []string {
	return themeOrder
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:          "Nightfox",
		Background:    "#131a24",
		Surface:       "#192330",
		SurfaceAlt:    "#212e3f",
		FocusBg:       "#29394f",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Border:        "#39506d",
		BorderFocus:   "#719cd6",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Success:       "#81b29a",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Info:          "#63cdcf",
		// blue, green, magenta, orange, cyan, yellow
		CategoryColors: []string{"#719cd6", "#81b29a", "#9d79d6", "#f4a261", "#63cdcf", "#dbc074"},
	}
}

// Tailwind slate with sky accents: https://tailwindcss.com/docs/colors
func slateTheme() Theme {
	return Theme{
		Name:          "Slate",
		Background:    "#020617",
		Surface:       "#0f172a",
		SurfaceAlt:    "#1e293b",
		FocusBg:       "#283548",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Border:        "#334155",
		BorderFocus:   "#38bdf8",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#22c55e",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		Info:          "#06b6d4",
		// sky, green, purple, amber, teal, pink
		CategoryColors: []string{"#0ea5e9", "#22c55e", "#a855f7", "#f59e0b", "#14b8a6", "#ec4899"},
	}
}
