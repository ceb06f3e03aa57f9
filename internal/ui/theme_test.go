package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, got)
		}
	}
	if got := GetTheme("Solarized").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Solarized).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestCategoryColor_WrapsAndFallsBack(t *testing.T) {
	th := GetTheme("Slate")
	styles := th.Styles()

	if got := styles.CategoryColor(-1); got != th.Muted {
		t.Fatalf("CategoryColor(-1) = %q, want muted %q", got, th.Muted)
	}
	if got := styles.CategoryColor(0); got != th.CategoryColors[0] {
		t.Fatalf("CategoryColor(0) = %q, want %q", got, th.CategoryColors[0])
	}
	n := len(th.CategoryColors)
	if got := styles.CategoryColor(n + 1); got != th.CategoryColors[1] {
		t.Fatalf("CategoryColor(%d) = %q, want wrap to %q", n+1, got, th.CategoryColors[1])
	}
}

func TestWithBackground_PreservesCategoryColors(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles().WithBackground(th.Surface)
	if got := styles.CategoryColor(2); got != th.CategoryColors[2] {
		t.Fatalf("CategoryColor after WithBackground = %q, want %q", got, th.CategoryColors[2])
	}
	if got := styles.CategoryColor(-1); got != th.Muted {
		t.Fatalf("muted lost after WithBackground: %q", got)
	}
}

func TestWithBackground_LeavesOriginalUntouched(t *testing.T) {
	th := GetTheme("Slate")
	base := th.Styles()
	painted := base.WithBackground(th.FocusBg)

	for i, st := range painted.all() {
		if got := st.GetBackground(); got != lipgloss.Color(th.FocusBg) {
			t.Fatalf("style %d background = %v, want %s", i, got, th.FocusBg)
		}
	}
	if got := base.Text.GetBackground(); got == lipgloss.Color(th.FocusBg) {
		t.Fatalf("WithBackground changed the receiver")
	}
}
