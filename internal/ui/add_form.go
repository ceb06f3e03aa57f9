package ui

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quoter/internal/quotes"
)

const (
	addMissingMessage = "Please enter both a quote and a category."
	addSuccessMessage = "Quote added successfully!"
)

// addForm holds the two inputs of the add view.
type addForm struct {
	inputs [2]textinput.Model // text, category
	focus  int
}

func newAddForm() addForm {
	text := textinput.New()
	text.Placeholder = "Enter a new quote"
	text.CharLimit = 500

	category := textinput.New()
	category.Placeholder = "Enter quote category"
	category.CharLimit = 60

	return addForm{inputs: [2]textinput.Model{text, category}}
}

func (f *addForm) setWidth(w int) {
	w = max(w, 10)
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

// focusField moves focus to field i.
func (f *addForm) focusField(i int) tea.Cmd {
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j != f.focus {
			f.inputs[j].Blur()
		}
	}
	return f.inputs[f.focus].Focus()
}

func (f *addForm) blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *addForm) values() (text, category string) {
	return strings.TrimSpace(f.inputs[0].Value()), strings.TrimSpace(f.inputs[1].Value())
}

func (f *addForm) reset() {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
}

// openAddForm switches to the add view with the text input focused.
func (m *Model) openAddForm() tea.Cmd {
	m.currentView = ViewAdd
	return m.form.focusField(0)
}

// handleAddKey processes keyboard input for the add view. Printable keys go
// to the focused input, so only control keys act here.
func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape):
		m.form.blur()
		m.currentView = ViewQuote
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.form.focusField(m.form.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.form.focusField(m.form.focus - 1)
	case key.Matches(msg, m.keys.Confirm):
		text, category := m.form.values()
		if m.form.focus == 0 && text != "" && category == "" {
			return m, m.form.focusField(1)
		}
		return m, m.submitAdd()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

// submitAdd validates and stores the form contents.
func (m *Model) submitAdd() tea.Cmd {
	text, category := m.form.values()
	q, err := quotes.New(text, category)
	if errors.Is(err, quotes.ErrMissingFields) {
		m.setFlash(flashError, addMissingMessage)
		return nil
	}
	if err != nil {
		m.setFlash(flashError, err.Error())
		return nil
	}

	if err := m.lib.Add(q); err != nil {
		m.logger.Error("save added quote failed", slog.String("id", q.ID), slog.Any("error", err))
		m.setFlash(flashWarning, "Quote added but not saved: "+err.Error())
	} else {
		m.logger.Info("quote added", slog.String("id", q.ID), slog.String("category", q.Category))
		m.setFlash(flashSuccess, addSuccessMessage)
	}

	m.applySnapshot(m.lib.Snapshot(), m.conflicts)
	m.form.reset()
	return m.form.focusField(0)
}

// renderAddForm renders the add view.
func (m Model) renderAddForm() string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()

	labels := []string{"Quote", "Category"}
	var lines []string
	lines = append(lines, "")
	for i, input := range m.form.inputs {
		style := styles.MutedText
		if i == m.form.focus {
			style = styles.AccentText.Bold(true)
		}
		lines = append(lines, " "+bg.Render(labels[i], style))
		lines = append(lines, " "+input.View())
		lines = append(lines, "")
	}

	existing := quotes.Categories(m.snapshot.Quotes)
	if len(existing) > 0 {
		lines = append(lines, " "+bg.Render("Existing: "+strings.Join(existing, ", "), styles.FaintText))
	}

	return m.renderTitledBox("Add Quote", strings.Join(lines, "\n"), m.width, m.contentHeight(), true)
}
