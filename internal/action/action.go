package action

import (
	"fmt"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/format/radix"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
	"github.com/atomicstack/tmux-bitflags/internal/session"
)

// Action names a copy variant offered for a selected entry. The empty
// action is the default for the entry.
type Action string

const (
	Default  Action = ""
	CopyDez  Action = "copy_dez"
	CopyHex  Action = "copy_hex"
	CopyBin  Action = "copy_bin"
	CopyName Action = "copy_name"
)

var labels = map[Action]string{
	Default:  "Copy value",
	CopyDez:  "Copy flag as decimal number",
	CopyHex:  "Copy flag as hexadecimal number",
	CopyBin:  "Copy flag as binary number",
	CopyName: "Copy name of flag",
}

// String returns the action name, "default" for the default action.
func (a Action) String() string {
	if a == Default {
		return "default"
	}
	return string(a)
}

// Label returns the human readable description of a.
func (a Action) Label() string {
	if l, ok := labels[a]; ok {
		return l
	}
	return string(a)
}

// Parse validates an action name.
func Parse(s string) (Action, error) {
	a := Action(s)
	switch a {
	case Default, CopyDez, CopyHex, CopyBin, CopyName:
		return a, nil
	}
	return Default, fmt.Errorf("unknown action %q", s)
}

// ForEntry lists the actions that produce output for kind.
func ForEntry(kind session.Kind) []Action {
	switch kind {
	case session.KindValueView:
		return []Action{Default}
	case session.KindFlagBit:
		return []Action{CopyBin, CopyDez, CopyHex, CopyName}
	default:
		return nil
	}
}

// Execute returns the clipboard text for e under a. The second result is
// false when the combination produces nothing to copy.
//
// Value views always render in their own base, so a base-selecting action
// cannot override them.
func Execute(e session.Entry, a Action) (string, bool) {
	var text string
	switch e.Kind {
	case session.KindValueView:
		if a == CopyName {
			return "", false
		}
		text = radix.Value(e.State.Value, e.State.Base)
	case session.KindFlagBit:
		if e.Bit == nil {
			return "", false
		}
		switch a {
		case Default, CopyBin:
			text = radix.Value(e.Bit.Value, numeral.Bin)
		case CopyDez:
			text = radix.Value(e.Bit.Value, numeral.Dec)
		case CopyHex:
			text = radix.Value(e.Bit.Value, numeral.Hex)
		case CopyName:
			text = e.Bit.Label
			if !e.Bit.Known {
				text = flags.UnknownLabel
			}
		}
	}
	return text, text != ""
}
