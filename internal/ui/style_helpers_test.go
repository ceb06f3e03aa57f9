package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestBgStyle_PreservesSpacing(t *testing.T) {
	bg := NewBgStyle("#000000")
	style := lipgloss.NewStyle()

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"word", "word"},
		{"two words", "two words"},
		{"a  b", "a  b"},
		{" lead", " lead"},
		{"trail ", "trail "},
	}
	for _, tt := range tests {
		if got := ansi.Strip(bg.Render(tt.in, style)); got != tt.want {
			t.Fatalf("Render(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got := ansi.Strip(bg.Spaces(3)); got != "   " {
		t.Fatalf("Spaces(3) = %q", got)
	}
	if got := bg.Spaces(0); got != "" {
		t.Fatalf("Spaces(0) = %q, want empty", got)
	}
	if got := lipgloss.Width(bg.FillLine("ab", 6)); got != 6 {
		t.Fatalf("FillLine width = %d, want 6", got)
	}
}
