package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-bitflags/internal/action"
	"github.com/atomicstack/tmux-bitflags/internal/logging"
	"github.com/atomicstack/tmux-bitflags/internal/logging/events"
	"github.com/atomicstack/tmux-bitflags/internal/session"
	"github.com/atomicstack/tmux-bitflags/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// copyResultMsg reports the outcome of handing text to the clipboard.
type copyResultMsg struct {
	kind   session.Kind
	action action.Action
	text   string
	err    error
}

// copyEntry ends the chain with a on e. Combinations that produce no text
// leave the popup open.
func (m *Model) copyEntry(e session.Entry, a action.Action) tea.Cmd {
	text, ok := action.Execute(e, a)
	if !ok {
		events.Action.Nothing(e.Kind.String(), a.String())
		m.setInfo("Nothing to copy")
		return nil
	}
	m.loading = true
	m.errMsg = ""
	m.forceClearInfo()
	clip := m.clip
	return m.bus.Execute(command.Request{
		ID:    e.ID(),
		Label: a.Label(),
		Run: func() tea.Msg {
			return copyResultMsg{kind: e.Kind, action: a, text: text, err: clip.Write(text)}
		},
	})
}

func (m *Model) handleCopyResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(copyResultMsg)
	if !ok {
		return nil
	}
	m.loading = false
	events.Action.Copy(result.kind.String(), result.action.String(), result.text)
	if result.err != nil {
		logging.Error(fmt.Errorf("copy %q: %w", result.text, result.err))
		events.Action.Error(result.err)
	} else {
		events.Action.Success(result.text)
	}
	m.result = &CopyResult{
		Kind:   result.kind,
		Action: result.action.String(),
		Text:   result.text,
		Err:    result.err,
	}
	return tea.Quit
}
