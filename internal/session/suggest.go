package session

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/format/radix"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
)

var filterOrder = []flags.Filter{flags.FilterOnlyTrue, flags.FilterOnlyFalse, flags.FilterNone}

var filterText = map[flags.Filter][2]string{
	flags.FilterOnlyTrue:  {"Show only True flags", "Show only flags, that are set within the value"},
	flags.FilterOnlyFalse: {"Show only False flags", "Show only flags, that are not set within the value"},
	flags.FilterNone:      {"Show both (True and False) flags", "Show all flags, set or not set"},
}

// Root lists one entry per dictionary in c.
func Root(c *flags.Catalog) []Entry {
	names := c.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		d, _ := c.Get(name)
		entries = append(entries, Entry{
			Kind:   KindDictionary,
			Label:  name,
			Detail: fmt.Sprintf("%d flags", d.Len()),
			State:  Fresh(name),
		})
	}
	return entries
}

// Suggest performs one transition: it resolves the value for prior using the
// text typed at this step and returns the value views, the filter toggles and
// the decomposed bits. The only failure is a prior state whose dictionary is
// no longer in c.
func Suggest(c *flags.Catalog, input string, prior State) ([]Entry, error) {
	d, ok := c.Get(prior.Dictionary)
	if !ok {
		return nil, &StaleReferenceError{Dictionary: prior.Dictionary}
	}
	value := resolve(d, input, prior)
	current := prior.WithValue(value)

	bitsFound := flags.Decompose(d, value, prior.Filter)
	entries := make([]Entry, 0, len(numeral.Bases())+len(filterOrder)-1+len(bitsFound))

	for _, base := range numeral.Bases() {
		entries = append(entries, Entry{
			Kind:   KindValueView,
			Label:  radix.Value(value, base),
			Detail: base.String(),
			State:  current.WithBase(base),
		})
	}

	for _, f := range filterOrder {
		if f == prior.Filter {
			continue
		}
		text := filterText[f]
		entries = append(entries, Entry{
			Kind:   KindFilterToggle,
			Label:  text[0],
			Detail: text[1],
			State:  current.WithFilter(f),
		})
	}

	w := radix.WidthsFor(d.MaxKey(), flags.BitWidth(d, value))
	for i := range bitsFound {
		bit := bitsFound[i]
		line := radix.Flag(bit.Value, bit.Label, prior.Base, w)
		label, detail := line, ""
		if prior.Filter == flags.FilterNone {
			label, detail = strconv.FormatBool(bit.Set), line
		}
		entries = append(entries, Entry{
			Kind:   KindFlagBit,
			Label:  label,
			Detail: detail,
			State:  current.WithValue(value ^ bit.Value),
			Bit:    &bit,
		})
	}
	return entries, nil
}

// Bits returns only the flag entries of a suggestion list.
func Bits(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Kind == KindFlagBit {
			out = append(out, e)
		}
	}
	return out
}
