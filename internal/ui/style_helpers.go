package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints every cell of a row with one background. Lipgloss resets
// after each styled run, so gaps between runs would otherwise show the
// terminal default.
type BgStyle struct {
	fill lipgloss.Style
}

// NewBgStyle returns a BgStyle for the given color.
func NewBgStyle(bgColor string) BgStyle {
	return BgStyle{fill: lipgloss.NewStyle().Background(lipgloss.Color(bgColor))}
}

// Render styles each word of text and keeps every space, runs included,
// on the shared background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	word := style.Background(b.fill.GetBackground())
	space := b.fill.Render(" ")

	var out strings.Builder
	for i, w := range strings.Split(text, " ") {
		if i > 0 {
			out.WriteString(space)
		}
		if w != "" {
			out.WriteString(word.Render(w))
		}
	}
	return out.String()
}

// Spaces returns n filled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return b.fill.Render(strings.Repeat(" ", n))
}

// Sep renders a separator on the background.
func (b BgStyle) Sep(sep string) string {
	return b.fill.Render(sep)
}

// FillLine pads content out to width.
func (b BgStyle) FillLine(content string, width int) string {
	return b.fill.Width(width).Render(content)
}
