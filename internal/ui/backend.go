package ui

import (
	"github.com/atomicstack/tmux-bitflags/internal/backend"
	"github.com/atomicstack/tmux-bitflags/internal/logging"
	"github.com/atomicstack/tmux-bitflags/internal/session"
	uistate "github.com/atomicstack/tmux-bitflags/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent installs a reloaded catalog. A failed reload keeps the
// catalog that is already in use.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		logging.Error(evt.Err)
		m.backendLastErr = evt.Err.Error()
		m.errMsg = m.backendLastErr
		return
	}
	res := evt.Data
	catalog, err := res.Catalog.Select(m.patterns...)
	if err != nil {
		logging.Error(err)
		m.backendLastErr = err.Error()
		m.errMsg = m.backendLastErr
		return
	}
	res.Report(true)
	logging.SetDebugEnabled(res.Debug)
	m.store.Swap(catalog)
	if m.backendLastErr != "" && m.errMsg == m.backendLastErr {
		m.errMsg = ""
	}
	m.backendLastErr = ""
	m.rebuildLevels()
}

// rebuildLevels recomputes every level on the stack from the current store,
// keeping cursors on entries that survive the reload.
func (m *Model) rebuildLevels() {
	for _, l := range m.stack {
		keep := ""
		if item, ok := l.Current(); ok {
			keep = item.ID
		}
		switch l.Kind {
		case uistate.KindRoot:
			l.Replace(uistate.EntryItems(session.Root(m.store.Snapshot())), keep)
			l.Note = ""
			if len(l.Full) == 0 {
				l.Note = "No dictionaries configured."
			}
			m.syncViewport(l)
		case uistate.KindDecompose:
			m.refreshDecompose(l, keep)
		case uistate.KindActions:
			m.retarget(l, keep)
		}
	}
}

// retarget rebuilds an action level from the entry with the same identity in
// the refreshed parent level.
func (m *Model) retarget(l *level, keep string) {
	if l.Target == nil {
		return
	}
	parent := m.parentOf(l)
	if parent == nil {
		return
	}
	idx := -1
	for i, item := range parent.Full {
		if item.ID == l.Target.ID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.Target = nil
		l.Note = parent.Note
		if l.Note == "" {
			l.Note = staleNote
		}
		l.Replace(nil, "")
		m.syncViewport(l)
		return
	}
	target := parent.Full[idx].Entry
	l.Target = &target
	l.Note = ""
	l.Replace(actionItems(target), keep)
	m.syncViewport(l)
}

func (m *Model) parentOf(l *level) *level {
	for i := len(m.stack) - 1; i > 0; i-- {
		if m.stack[i] == l {
			return m.stack[i-1]
		}
	}
	return nil
}
