package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quoter/internal/prefs"
	"github.com/five82/quoter/internal/quotes"
	"github.com/five82/quoter/internal/state"
	"github.com/five82/quoter/internal/syncer"
)

// View represents the current active view.
type View int

const (
	ViewQuote View = iota
	ViewAdd
	ViewConflicts
	ViewLogs
)

// Syncer is the sync surface the UI drives. A nil Syncer means sync is disabled.
type Syncer interface {
	Sync(ctx context.Context) (syncer.Result, error)
	Conflicts() []syncer.Conflict
	Resolve(ctx context.Context, id string, res syncer.Resolution) error
	ResolveAll(ctx context.Context, res syncer.Resolution) (int, error)
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Library    *state.Library
	Syncer     Syncer
	Picker     *quotes.Picker
	PollTick   time.Duration
	ThemeName  string
	Category   string // restored last_category
	PrefsPath  string
	LogPath    string
	ExportPath string // prefilled export destination
	Logger     *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	lib        *state.Library
	syncer     Syncer
	picker     *quotes.Picker
	keys       keyMap
	prefsPath  string
	logPath    string
	exportPath string
	pollTick   time.Duration
	logger     *slog.Logger

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	modal       Modal
	flash       flash

	// Data state
	snapshot    state.Snapshot
	conflicts   []syncer.Conflict
	lastUpdated time.Time
	syncing     bool

	// Quote view
	category string
	current  quotes.Quote
	display  string

	// Add form
	form addForm

	// Conflicts view
	selected int

	// Log view
	logViewport viewport.Model
	logLines    []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	category := strings.TrimSpace(opts.Category)
	if category == "" {
		category = quotes.AllCategories
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lib := opts.Library
	if lib == nil {
		lib = state.NewLibrary(nil, nil)
	}

	m := Model{
		ctx:         ctx,
		lib:         lib,
		syncer:      opts.Syncer,
		picker:      opts.Picker,
		keys:        DefaultKeyMap(),
		prefsPath:   prefsPath,
		logPath:     opts.LogPath,
		exportPath:  opts.ExportPath,
		pollTick:    pollTick,
		logger:      logger,
		theme:       GetTheme(themeName),
		currentView: ViewQuote,
		category:    category,
		form:        newAddForm(),
	}
	m.applySnapshot(lib.Snapshot(), nil)
	if !m.hasCategory(m.category) {
		m.category = quotes.AllCategories
	}
	m.showNewQuote()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		fetchSnapshotCmd(m.lib, m.syncer),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initLogViewport()
		}
		m.ready = true
		m.form.setWidth(m.width - 8)
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(msg.snapshot, msg.conflicts)
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		m.handleSyncDone(msg)
		return m, fetchSnapshotCmd(m.lib, m.syncer)

	case resolveDoneMsg:
		m.handleResolveDone(msg)
		return m, fetchSnapshotCmd(m.lib, m.syncer)

	case promptSubmitMsg:
		return m.handlePromptSubmit(msg)

	case importDoneMsg:
		m.handleImportDone(msg)
		return m, fetchSnapshotCmd(m.lib, m.syncer)

	case exportDoneMsg:
		m.handleExportDone(msg)
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{fetchSnapshotCmd(m.lib, m.syncer)}

	if m.currentView == ViewLogs {
		cmds = append(cmds, readLogCmd(m.logPath))
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// applySnapshot adopts fresh library state and keeps the current quote in step
// with edits that arrived through sync.
func (m *Model) applySnapshot(snap state.Snapshot, conflicts []syncer.Conflict) {
	m.snapshot = snap
	m.conflicts = conflicts
	m.lastUpdated = time.Now()
	if m.selected >= len(m.conflicts) {
		m.selected = max(len(m.conflicts)-1, 0)
	}

	if m.current.ID == "" {
		if m.display == quotes.NoQuotesMessage && len(quotes.Filter(snap.Quotes, m.category)) > 0 {
			m.showNewQuote()
		}
		return
	}
	for _, q := range snap.Quotes {
		if q.ID == m.current.ID {
			if !quotes.SameContent(q, m.current) {
				m.current = q
				m.display = quotes.Format(q)
			}
			return
		}
	}
}

// showNewQuote picks a random quote from the selected category.
func (m *Model) showNewQuote() {
	m.current, m.display = m.picker.Show(m.snapshot.Quotes, m.category)
}

// categoryOptions returns the selectable categories, "all" first.
func (m Model) categoryOptions() []string {
	return append([]string{quotes.AllCategories}, quotes.Categories(m.snapshot.Quotes)...)
}

func (m Model) hasCategory(category string) bool {
	for _, c := range m.categoryOptions() {
		if c == category {
			return true
		}
	}
	return false
}

// cycleCategory moves the selection by step, wrapping around, and persists it.
func (m *Model) cycleCategory(step int) {
	options := m.categoryOptions()
	idx := -1
	for i, c := range options {
		if c == m.category {
			idx = i
			break
		}
	}
	switch {
	case idx < 0:
		idx = 0
	default:
		idx = (idx + step + len(options)) % len(options)
	}
	m.category = options[idx]
	m.showNewQuote()

	category := m.category
	if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.LastCategory = category }); err != nil {
		m.logger.Warn("save last category failed", slog.Any("error", err))
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderFlash())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAdd:
		return m.renderAddForm()
	case ViewConflicts:
		return m.renderConflicts()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderQuote()
	}
}

// contentHeight is the box height below the header and command bar and
// above the flash line.
func (m Model) contentHeight() int {
	return max(m.height-3, 3)
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snapshot  state.Snapshot
	conflicts []syncer.Conflict
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(lib *state.Library, s Syncer) tea.Cmd {
	return func() tea.Msg {
		msg := snapshotMsg{snapshot: lib.Snapshot()}
		if s != nil {
			msg.conflicts = s.Conflicts()
		}
		return msg
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
