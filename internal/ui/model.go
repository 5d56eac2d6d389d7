package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/tmux-bitflags/internal/backend"
	"github.com/atomicstack/tmux-bitflags/internal/clipboard"
	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/session"
	"github.com/atomicstack/tmux-bitflags/internal/theme"
	"github.com/atomicstack/tmux-bitflags/internal/ui/command"
	uistate "github.com/atomicstack/tmux-bitflags/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "dictionaries"
	rootLevelID         = "root"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries the user-facing switches of the popup.
type Options struct {
	SocketPath string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// Dictionaries restricts reloaded catalogs to names matching these globs.
	Dictionaries []string
}

// CopyResult describes the text handed to the clipboard when the chain ended.
type CopyResult struct {
	Kind   session.Kind
	Action string
	Text   string
	Err    error
}

// Model implements the Bubble Tea model for the bit flag popup.
type Model struct {
	stack             []*level
	loading           bool
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendLastErr    string
	showFooter        bool
	verbose           bool
	filterCursor      cursor.Model
	filterCursorDirty bool
	levelSeq          int

	handlers map[reflect.Type]msgHandler

	bus        *command.Bus
	store      *flags.Store
	patterns   []string
	clip       clipboard.Writer
	socketPath string
	rootTitle  string
	result     *CopyResult
}

// NewModel initialises the UI with the dictionaries currently in store.
func NewModel(opts Options, store *flags.Store, watcher *backend.Watcher, clip clipboard.Writer) *Model {
	if store == nil {
		store = flags.NewStore(nil)
	}
	if clip == nil {
		clip = clipboard.Discard{}
	}
	root := uistate.NewLevel(rootLevelID, defaultRootTitle, uistate.KindRoot, uistate.EntryItems(session.Root(store.Snapshot())))
	m := &Model{
		stack:      []*level{root},
		bus:        command.New(),
		backend:    watcher,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
		store:      store,
		patterns:   append([]string(nil), opts.Dictionaries...),
		clip:       clip,
		socketPath: opts.SocketPath,
		rootTitle:  defaultRootTitle,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.syncViewport(root)
	if len(root.Items) == 0 {
		root.Note = "No dictionaries configured."
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
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Result reports what was copied, if the chain ended with a copy.
func (m *Model) Result() (CopyResult, bool) {
	if m.result == nil {
		return CopyResult{}, false
	}
	return *m.result, true
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(copyResultMsg{}):     m.handleCopyResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
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
