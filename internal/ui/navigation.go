package ui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/atomicstack/tmux-bitflags/internal/action"
	"github.com/atomicstack/tmux-bitflags/internal/format/radix"
	"github.com/atomicstack/tmux-bitflags/internal/logging/events"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
	"github.com/atomicstack/tmux-bitflags/internal/session"
	uistate "github.com/atomicstack/tmux-bitflags/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	staleNote   = "dictionary removed"
	nothingNote = "(nothing to copy)"
	stepItemID  = "step"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	current := m.currentLevel()
	if current == nil || len(m.stack) <= 1 {
		return tea.Quit
	}
	events.Session.Back(current.ID)
	parent := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-1]
	if parent != nil {
		if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
			parent.Cursor = parent.LastCursor
		} else if len(parent.Items) > 0 && parent.Cursor >= len(parent.Items) {
			parent.Cursor = len(parent.Items) - 1
		}
		parent.LastCursor = -1
		m.syncViewport(parent)
	}
	m.errMsg = ""
	m.forceClearInfo()
	return nil
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	switch current.Kind {
	case uistate.KindRoot:
		if item.Entry.Kind != session.KindDictionary {
			return nil
		}
		beforeCursor := current.FilterCursorPos()
		current.SetFilter("", 0)
		m.noteFilterCursorChange(current, beforeCursor)
		current.LastCursor = current.IndexOf(item.ID)
		events.Session.Open(item.Entry.State.Dictionary)
		m.pushDecompose(item.Entry.State.Dictionary, item.Entry.State)
		return nil
	case uistate.KindDecompose:
		switch item.Entry.Kind {
		case session.KindValueView:
			return m.copyEntry(item.Entry, action.Default)
		case session.KindFilterToggle, session.KindFlagBit:
			current.LastCursor = current.Cursor
			m.pushDecompose(stateTitle(item.Entry.State), item.Entry.State)
		}
		return nil
	case uistate.KindActions:
		if current.Target == nil {
			return nil
		}
		if item.Step {
			current.LastCursor = current.Cursor
			m.pushDecompose(stateTitle(current.Target.State), current.Target.State)
			return nil
		}
		return m.copyEntry(*current.Target, item.Action)
	}
	return nil
}

func (m *Model) handleTabKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil || current.Kind != uistate.KindDecompose {
		return nil
	}
	item, ok := current.Current()
	if !ok || !item.Entry.Copyable() {
		return nil
	}
	current.LastCursor = current.Cursor
	m.pushActions(item.Entry)
	return nil
}

// pushDecompose opens a level that performs one transition from st.
func (m *Model) pushDecompose(title string, st session.State) {
	m.levelSeq++
	id := "decompose:" + strconv.Itoa(m.levelSeq)
	l := uistate.NewLevel(id, title, uistate.KindDecompose, nil)
	l.State = st
	m.refreshDecompose(l, "")
	m.stack = append(m.stack, l)
	m.errMsg = ""
	m.forceClearInfo()
}

// refreshDecompose recomputes the suggestions of l for the text typed so far.
// The cursor stays on keepID when that entry is still offered.
func (m *Model) refreshDecompose(l *level, keepID string) {
	if l == nil || l.Kind != uistate.KindDecompose {
		return
	}
	entries, err := session.Suggest(m.store.Snapshot(), l.Filter, l.State)
	if err != nil {
		var stale *session.StaleReferenceError
		if errors.As(err, &stale) {
			events.Session.Stale(stale.Dictionary, err)
			l.Note = staleNote
		} else {
			l.Note = err.Error()
		}
		l.Replace(nil, "")
		m.syncViewport(l)
		return
	}
	l.Note = ""
	l.Replace(uistate.EntryItems(entries), keepID)
	var value uint64
	if len(entries) > 0 {
		value = entries[0].State.Value
	}
	syntax := ""
	if b := numeral.Syntax(l.Filter); b.Valid() {
		syntax = b.String()
	}
	events.Session.Suggest(l.State.Dictionary, l.Filter, syntax, value, l.State.Filter.String(), l.State.Base.String(), len(entries))
	m.syncViewport(l)
}

// pushActions lists the copy variants for e together with the step that
// continues the chain.
func (m *Model) pushActions(e session.Entry) {
	m.levelSeq++
	id := "actions:" + strconv.Itoa(m.levelSeq)
	l := uistate.NewLevel(id, "actions", uistate.KindActions, actionItems(e))
	target := e
	l.Target = &target
	m.syncViewport(l)
	m.stack = append(m.stack, l)
	m.errMsg = ""
	m.forceClearInfo()
}

func actionItems(e session.Entry) []uistate.Item {
	actions := action.ForEntry(e.Kind)
	items := make([]uistate.Item, 0, len(actions)+1)
	for _, a := range actions {
		detail := nothingNote
		if text, ok := action.Execute(e, a); ok {
			detail = text
		}
		items = append(items, uistate.Item{
			ID:     "action:" + a.String(),
			Label:  a.Label(),
			Detail: detail,
			Entry:  e,
			Action: a,
		})
	}
	step := uistate.Item{ID: stepItemID, Entry: e, Step: true}
	switch e.Kind {
	case session.KindValueView:
		step.Label = fmt.Sprintf("Show flags in %s", e.State.Base)
	case session.KindFlagBit:
		step.Label = "Toggle flag"
	}
	step.Detail = stateTitle(e.State)
	return append(items, step)
}

// stateTitle names a decomposition level by the value it starts from.
func stateTitle(st session.State) string {
	return radix.Value(st.Value, st.Base)
}

func (m *Model) moveCursorUp() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorUp() {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorDown() {
	if current := m.currentLevel(); current != nil {
		if current.MoveCursorDown() {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageUp() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageUp(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorPageDown() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorPageDown(m.maxVisibleItems()); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorHome() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorHome(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) moveCursorEnd() {
	if current := m.currentLevel(); current != nil {
		if moved := current.MoveCursorEnd(); moved {
			events.UI.MenuCursor(current.ID, current.Cursor)
		}
		m.syncViewport(current)
	}
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyTab {
		return m.handleTabKey()
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return nil
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}
