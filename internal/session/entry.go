package session

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
)

// Kind classifies an entry.
type Kind int

const (
	KindDictionary Kind = iota
	KindValueView
	KindFilterToggle
	KindFlagBit
)

func (k Kind) String() string {
	switch k {
	case KindDictionary:
		return "dictionary"
	case KindValueView:
		return "value"
	case KindFilterToggle:
		return "filter"
	case KindFlagBit:
		return "flag"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Entry is one selectable line. State is what the next transition consumes
// when the entry is chosen; Bit is only set for KindFlagBit.
type Entry struct {
	Kind   Kind
	Label  string
	Detail string
	State  State
	Bit    *flags.BitResult
}

// ID returns a stable identifier unique within one suggestion list.
func (e Entry) ID() string {
	switch e.Kind {
	case KindDictionary:
		return "dict:" + e.State.Dictionary
	case KindValueView:
		return "value:" + strconv.Itoa(int(e.State.Base))
	case KindFilterToggle:
		return "filter:" + e.State.Filter.String()
	case KindFlagBit:
		if e.Bit != nil {
			return "flag:" + strconv.FormatUint(e.Bit.Value, 10)
		}
	}
	return e.Kind.String() + ":" + e.Label
}

// Copyable reports whether the entry can end the chain with a copy action.
func (e Entry) Copyable() bool {
	return e.Kind == KindValueView || e.Kind == KindFlagBit
}
