package session

import (
	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
)

// State records where the user is in one interaction chain. Values are
// derived with the With* helpers and never modified in place.
type State struct {
	Dictionary string
	// Value is only meaningful when Chosen is set; a fresh state has no
	// value yet and resolves to the dictionary default on first use.
	Value  uint64
	Chosen bool
	Filter flags.Filter
	Base   numeral.Base
}

// Fresh returns the state attached to a dictionary entry at the root.
func Fresh(dictionary string) State {
	return State{Dictionary: dictionary, Filter: flags.FilterNone, Base: numeral.Bin}
}

// WithValue returns a copy of s fixed to v.
func (s State) WithValue(v uint64) State {
	s.Value = v
	s.Chosen = true
	return s
}

// WithFilter returns a copy of s using f.
func (s State) WithFilter(f flags.Filter) State {
	s.Filter = f
	return s
}

// WithBase returns a copy of s displayed in b.
func (s State) WithBase(b numeral.Base) State {
	s.Base = b
	return s
}

// resolve picks the value for a transition: a parsable numeral typed at
// this step wins, then the value carried by the prior state, then the union
// of the dictionary keys.
func resolve(d *flags.Dictionary, input string, prior State) uint64 {
	if input != "" {
		if v, ok := numeral.Parse(input); ok {
			return v
		}
	}
	if prior.Chosen {
		return prior.Value
	}
	return d.Union()
}
