package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/libroom/internal/availability"
	"github.com/five82/libroom/internal/calendar"
	"github.com/five82/libroom/internal/ledger"
	"github.com/five82/libroom/internal/logtail"
	"github.com/five82/libroom/internal/source"
	"github.com/five82/libroom/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewDays View = iota
	ViewLogs
)

const (
	defaultPastDays  = 3
	defaultDaysAhead = 28
	logTailLines     = 500
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Crawler   source.RemoteCrawler // offered when cycling the data source
	PastDays  int
	DaysAhead int
	LogPath   string
	PollTick  time.Duration
	ThemeName string
	Now       func() time.Time
	Logger    *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	crawler   source.RemoteCrawler
	pastDays  int
	daysAhead int
	logPath   string
	pollTick  time.Duration
	now       func() time.Time
	logger    *zap.Logger
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot state.Snapshot
	today    time.Time
	days     []time.Time
	cursor   int
	notice   string

	detailViewport viewport.Model
	logViewport    viewport.Model
	logLines       []string

	showHelp bool
	settings settingsForm
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = time.Second
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	pastDays := opts.PastDays
	if pastDays < 0 {
		pastDays = defaultPastDays
	}
	daysAhead := opts.DaysAhead
	if daysAhead <= 0 {
		daysAhead = defaultDaysAhead
	}

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		crawler:     opts.Crawler,
		pastDays:    pastDays,
		daysAhead:   daysAhead,
		logPath:     opts.LogPath,
		pollTick:    pollTick,
		now:         now,
		logger:      logger,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewDays,
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	m.rebuildDays()
	m.cursor = m.todayIndex()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewports()
		m.ready = true
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.updateDetailViewport()
		return m, nil

	case resultMsg:
		if !m.acceptResult(msg) {
			m.logger.Debug("dropping stale availability result",
				zap.String("query_id", msg.id),
				zap.Int64("date_key", msg.key),
			)
			return m, nil
		}
		m.snapshot = m.store.Snapshot()
		m.updateDetailViewport()
		return m, nil

	case logLinesMsg:
		m.logLines = msg
		m.updateLogViewport()
		return m, nil

	case logErrorMsg:
		m.notice = "log read failed: " + msg.err.Error()
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
	if m.settings.open {
		return m.renderSettings()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.settings.open {
		return m.handleSettingsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil
	case key.Matches(msg, m.keys.Settings):
		m.openSettings()
		return m, nil
	case key.Matches(msg, m.keys.Logs):
		if m.currentView == ViewLogs {
			m.currentView = ViewDays
			return m, nil
		}
		m.currentView = ViewLogs
		return m, readLogCmd(m.logPath)
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewDays
		m.notice = ""
		return m, nil
	}

	if m.currentView == ViewLogs {
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}
	return m.handleDaysKey(msg)
}

func (m Model) handleDaysKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.days))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.days))
	case key.Matches(msg, m.keys.Today):
		m.cursor = m.todayIndex()
		m.updateDetailViewport()
	case key.Matches(msg, m.keys.PageUp):
		m.detailViewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleCursor()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.days) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.days)-1)
	m.notice = ""
	m.updateDetailViewport()
}

// toggleCursor books or un-books the day under the cursor. When a lookup is
// started the returned command waits for it to settle.
func (m Model) toggleCursor() (tea.Model, tea.Cmd) {
	if m.store == nil || len(m.days) == 0 {
		return m, nil
	}
	date := m.days[m.cursor]
	wasBooked := ledger.IsBooked(m.store.Snapshot().Ledger, date)
	future, booked := m.store.Toggle(m.ctx, date)
	m.snapshot = m.store.Snapshot()
	m.notice = ""

	if !booked {
		if !wasBooked {
			m.notice = "Past days cannot be booked."
		}
		m.updateDetailViewport()
		m.logger.Debug("day not booked", zap.Time("date", date), zap.Bool("was_booked", wasBooked))
		return m, nil
	}
	m.updateDetailViewport()
	if future == nil {
		m.logger.Debug("day booked without lookup", zap.Time("date", date))
		return m, nil
	}
	return m, waitResultCmd(m.ctx, future)
}

// acceptResult reports whether a settled lookup still belongs to the ledger.
// Results for un-booked dates, or for dates re-booked with a newer lookup,
// are stale.
func (m Model) acceptResult(msg resultMsg) bool {
	if m.store == nil {
		return false
	}
	entry, ok := m.store.Snapshot().Ledger.EntryForKey(msg.key)
	return ok && entry != nil && entry.ID() == msg.id
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if !calendar.StartOfDay(m.now()).Equal(m.today) {
		selected := m.selectedDate()
		m.rebuildDays()
		m.cursor = m.indexOf(selected)
	}
	if m.currentView == ViewLogs {
		cmds = append(cmds, readLogCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) rebuildDays() {
	m.today = calendar.StartOfDay(m.now())
	first := m.today.AddDate(0, 0, -m.pastDays)
	m.days = calendar.Days(first, m.pastDays+m.daysAhead+1)
}

func (m Model) todayIndex() int {
	return m.indexOf(m.today)
}

// indexOf returns the row for date, or today's row when date is off the list.
func (m Model) indexOf(date time.Time) int {
	key := calendar.DateKey(calendar.StartOfDay(date))
	for i, d := range m.days {
		if calendar.DateKey(d) == key {
			return i
		}
	}
	if date.Equal(m.today) {
		return min(m.pastDays, max(len(m.days)-1, 0))
	}
	return m.indexOf(m.today)
}

func (m Model) selectedDate() time.Time {
	if m.cursor < 0 || m.cursor >= len(m.days) {
		return m.today
	}
	return m.days[m.cursor]
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// resultMsg announces that the lookup id for date key settled.
type resultMsg struct {
	key int64
	id  string
}

type logLinesMsg []string

type logErrorMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func waitResultCmd(ctx context.Context, f *availability.Future) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.Done():
			return resultMsg{key: f.Key(), id: f.ID()}
		case <-ctx.Done():
			return nil
		}
	}
}

func readLogCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, logTailLines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		lines := make([]string, len(entries))
		for i, e := range entries {
			lines[i] = e.Format()
		}
		return logLinesMsg(lines)
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
