package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/pkgscout/internal/logging"
	"github.com/five82/pkgscout/internal/prefs"
	"github.com/five82/pkgscout/internal/recent"
	"github.com/five82/pkgscout/internal/saved"
	"github.com/five82/pkgscout/internal/suggest"
)

// npm caps package names at 214 characters.
const queryCharLimit = 214

// Options configures the UI.
type Options struct {
	Aggregator *suggest.Aggregator
	Recent     *recent.Store
	Saved      *saved.Store
	ThemeName  string
	// PrefsPath receives the theme when it is cycled. Empty disables saving.
	PrefsPath string
	Logger    *zap.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	agg    *suggest.Aggregator
	recent *recent.Store
	saved  *saved.Store
	logger *zap.Logger

	prefsPath string

	keys    keyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model
	theme   Theme

	width  int
	height int

	result suggest.Result
	cursor int
	state  saved.State
	status string

	feed *savedFeed
}

type resultMsg suggest.Result

type updatesClosedMsg struct{}

type savedMsg saved.State

// New creates the model and subscribes to saved-state changes. Call Close
// when the program exits.
func New(opts Options) Model {
	input := textinput.New()
	input.Placeholder = "search packages"
	input.Prompt = "› "
	input.CharLimit = queryCharLimit
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		agg:       opts.Aggregator,
		recent:    opts.Recent,
		saved:     opts.Saved,
		logger:    logging.OrNop(opts.Logger).Named("ui"),
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		spinner:   sp,
		theme:     GetTheme(opts.ThemeName),
	}

	if m.agg != nil {
		m.result = m.agg.Current()
	}
	if m.saved != nil {
		m.state = m.saved.State()
		feed := &savedFeed{ch: make(chan saved.State, 1)}
		feed.unsubscribe = m.saved.Subscribe(func(ev saved.ChangeEvent) {
			feed.push(ev.State)
		})
		m.feed = feed
	}
	return m
}

// Close releases the saved-state subscription. It is safe to call more than
// once.
func (m Model) Close() {
	if m.feed != nil {
		m.feed.close()
	}
}

// savedFeed hands saved-state broadcasts to the program through a one-slot
// channel. The latest state wins; the UI only renders counts and marks.
type savedFeed struct {
	mu          sync.Mutex
	closed      bool
	ch          chan saved.State
	unsubscribe func()
}

func (f *savedFeed) push(st saved.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case <-f.ch:
	default:
	}
	select {
	case f.ch <- st:
	default:
	}
}

func (f *savedFeed) close() {
	if f.unsubscribe != nil {
		f.unsubscribe()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}

func (m Model) savedUpdates() <-chan saved.State {
	if m.feed == nil {
		return nil
	}
	return m.feed.ch
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.waitForResult(),
		waitForSaved(m.savedUpdates()),
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
		m.input.Width = max(10, msg.Width-8)
		m.help.Width = msg.Width
		return m, nil

	case resultMsg:
		// Updates computed before the latest keystroke are superseded by the
		// result Input already returned.
		if msg.Query == strings.TrimSpace(m.input.Value()) {
			m.setResult(suggest.Result(msg))
		}
		return m, m.waitForResult()

	case updatesClosedMsg:
		return m, nil

	case savedMsg:
		m.state = saved.State(msg)
		return m, waitForSaved(m.savedUpdates())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.result.Items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		m.remember()
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		m.toggle(saved.Favorites)
		return m, nil

	case key.Matches(msg, m.keys.Watch):
		m.toggle(saved.Watchlist)
		return m, nil

	case key.Matches(msg, m.keys.ClearRecent):
		if m.recent != nil {
			m.recent.Clear()
			m.status = "recent searches cleared"
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.logger.Warn("save theme", zap.Error(err))
			}
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before && m.agg != nil {
		m.setResult(m.agg.Input(m.input.Value()))
		m.cursor = 0
		m.status = ""
	}
	return m, cmd
}

// remember records the highlighted suggestion, or the raw query when the list
// is empty, as a recent search.
func (m *Model) remember() {
	if m.recent == nil {
		return
	}
	value := strings.TrimSpace(m.input.Value())
	if item, ok := m.selected(); ok {
		value = item.Value
	}
	if value == "" {
		return
	}
	m.recent.Add(value)
	m.logger.Debug("recorded recent search", zap.String("term", value))
	m.status = fmt.Sprintf("remembered %s", value)
	m.refresh()
}

func (m *Model) toggle(list saved.List) {
	item, ok := m.selected()
	if !ok || m.saved == nil {
		return
	}
	m.state = m.saved.Toggle(list, item.Value)
	if m.state.Contains(list, item.Value) {
		m.status = fmt.Sprintf("%s added to %s", item.Value, list)
	} else {
		m.status = fmt.Sprintf("%s removed from %s", item.Value, list)
	}
}

func (m Model) selected() (suggest.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.result.Items) {
		return suggest.Item{}, false
	}
	return m.result.Items[m.cursor], true
}

// refresh recomputes local contributions after a store changed.
func (m *Model) refresh() {
	if m.agg != nil {
		m.setResult(m.agg.Current())
	}
}

func (m *Model) setResult(r suggest.Result) {
	m.result = r
	if m.cursor >= len(r.Items) {
		m.cursor = max(0, len(r.Items)-1)
	}
}

func (m Model) waitForResult() tea.Cmd {
	if m.agg == nil {
		return nil
	}
	ch := m.agg.Updates()
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return updatesClosedMsg{}
		}
		return resultMsg(r)
	}
}

func waitForSaved(ch <-chan saved.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return savedMsg(st)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
