package ui

import (
	"reflect"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/executor"
	"github.com/qlsh/quick-launcher/internal/stats"
	"github.com/qlsh/quick-launcher/internal/store"
	"github.com/qlsh/quick-launcher/internal/theme"
	uistate "github.com/qlsh/quick-launcher/internal/ui/state"
)

type nav = uistate.Nav

// Mode selects which input surface owns the keyboard.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeEntryForm
	ModePlaceholderForm
	ModeConfirmRemove
	ModeConfirmDanger
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the launcher.
type Model struct {
	nav         *nav
	entries     map[string]*entry.Entry
	store       *store.Store
	usage       *stats.Stats
	exec        *executor.Executor
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	entryForm       *entryForm
	placeholderForm *placeholderForm
	confirmTarget   string
	pendingEntry    *entry.Entry
	pendingCommand  string
	pendingWarnings []string
	lastResult      *executor.Result

	filterCursor      cursor.Model
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler

	mode Mode
}

// Options carries the launcher configuration the UI needs.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Preview    bool
	Verbose    bool
	Warnings   []string
}

// NewModel initialises the UI over the loaded catalogue.
func NewModel(st *store.Store, entries map[string]*entry.Entry, usage *stats.Stats, exec *executor.Executor, opts Options) *Model {
	m := &Model{
		entries:    entries,
		store:      st,
		usage:      usage,
		exec:       exec,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		mode:       ModeBrowse,
	}
	m.nav = uistate.NewNav(m.sortedEntries(), opts.Preview)
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if len(opts.Warnings) > 0 {
		m.errMsg = opts.Warnings[0]
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.filterCursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModeEntryForm:
		return m.handleEntryForm(msg)
	case ModePlaceholderForm:
		return m.handlePlaceholderForm(msg)
	case ModeConfirmRemove:
		return m.handleConfirmRemove(msg)
	case ModeConfirmDanger:
		return m.handleConfirmDanger(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(execFinishedMsg{}):   m.handleExecFinishedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// sortedEntries flattens the catalogue into a deterministic slice.
func (m *Model) sortedEntries() []*entry.Entry {
	out := make([]*entry.Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out
}

// refreshEntries re-ranks the navigation state after a catalogue mutation.
func (m *Model) refreshEntries() {
	m.nav.UpdateEntries(m.sortedEntries())
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.nav.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
