package ui

import (
	"strings"

	"github.com/five82/quoter/internal/quotes"
)

// categoryLabel is the display name of a category option.
func categoryLabel(category string) string {
	if category == "" || category == quotes.AllCategories {
		return "All Categories"
	}
	return category
}

// renderQuote renders the quote view: category bar and the current quote.
func (m Model) renderQuote() string {
	bgColor := m.theme.FocusBg
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()
	inner := max(m.width-6, 10)

	var lines []string
	lines = append(lines, " "+m.renderCategoryBar(styles, bg))
	lines = append(lines, "")

	if m.current.ID == "" {
		lines = append(lines, " "+bg.Render(m.display, styles.MutedText))
	} else {
		for _, l := range wrap("\""+m.current.Text+"\"", inner) {
			lines = append(lines, " "+bg.Render(l, styles.Text.Bold(true)))
		}
		lines = append(lines, "")
		lines = append(lines, " "+bg.Render("— "+m.current.Category, styles.AccentText))
	}

	title := "Quote · " + categoryLabel(m.category)
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}

// renderCategoryBar shows every category with the selected one highlighted.
func (m Model) renderCategoryBar(styles Styles, bg BgStyle) string {
	options := m.categoryOptions()
	parts := make([]string, 0, len(options))
	for i, c := range options {
		label := categoryLabel(c)
		if c == m.category {
			parts = append(parts, styles.CategoryStyle(i-1).Render(label))
			continue
		}
		parts = append(parts, bg.Render(label, styles.FaintText))
	}
	return strings.Join(parts, bg.Spaces(1))
}
