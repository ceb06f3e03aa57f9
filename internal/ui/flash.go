package ui

import (
	"time"

	"github.com/five82/quoter/internal/quotes"
)

type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashWarning
	flashError
)

// flash is a transient status line message.
type flash struct {
	text string
	kind flashKind
	at   time.Time
}

func (m *Model) setFlash(kind flashKind, text string) {
	m.flash = flash{text: text, kind: kind, at: time.Now()}
}

// renderFlash renders the status line under the content box.
func (m Model) renderFlash() string {
	styles := m.theme.Styles()
	if m.flash.text == "" || time.Since(m.flash.at) > flashTTL {
		return styles.FaintText.Render(m.idleStatus())
	}
	text := truncate(m.flash.text, max(m.width-2, 10))
	switch m.flash.kind {
	case flashSuccess:
		return styles.SuccessText.Render(text)
	case flashWarning:
		return styles.WarningText.Render(text)
	case flashError:
		return styles.DangerText.Render(text)
	default:
		return styles.InfoText.Render(text)
	}
}

// idleStatus describes the library when no message is showing.
func (m Model) idleStatus() string {
	n := len(quotes.Filter(m.snapshot.Quotes, m.category))
	return plural(n, "quote") + " in " + categoryLabel(m.category)
}
