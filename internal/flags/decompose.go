package flags

import (
	"fmt"
	"math/bits"
)

// Filter selects which bits a decomposition reports.
type Filter int

const (
	FilterNone Filter = iota
	FilterOnlyTrue
	FilterOnlyFalse
)

// String returns the filter name used in trace logs and tokens.
func (f Filter) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterOnlyTrue:
		return "only-true"
	case FilterOnlyFalse:
		return "only-false"
	default:
		return fmt.Sprintf("filter(%d)", int(f))
	}
}

// ParseFilter is the inverse of Filter.String.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "none", "both":
		return FilterNone, nil
	case "only-true", "true", "set":
		return FilterOnlyTrue, nil
	case "only-false", "false", "unset":
		return FilterOnlyFalse, nil
	default:
		return FilterNone, fmt.Errorf("unknown filter %q", s)
	}
}

// Accepts reports whether a bit with the given state passes the filter.
func (f Filter) Accepts(set bool) bool {
	switch f {
	case FilterOnlyTrue:
		return set
	case FilterOnlyFalse:
		return !set
	default:
		return true
	}
}

// BitResult describes one power-of-two position of a decomposed value.
type BitResult struct {
	Position uint
	Value    uint64
	Set      bool
	Label    string
	Known    bool
}

// Decompose walks the powers of two up to the larger of value and the
// dictionary's biggest key and reports each bit that passes f, in ascending
// order. Bits without a configured name carry UnknownLabel.
//
// Keys that are not single powers of two are never visited.
func Decompose(d *Dictionary, value uint64, f Filter) []BitResult {
	maxKey := d.MaxKey()
	results := make([]BitResult, 0, BitWidth(d, value))
	for pos := uint(0); pos < 64; pos++ {
		bit := uint64(1) << pos
		if bit > value && bit > maxKey {
			break
		}
		set := value&bit == bit
		if !f.Accepts(set) {
			continue
		}
		label, known := d.Label(bit)
		if !known {
			label = UnknownLabel
		}
		results = append(results, BitResult{
			Position: pos,
			Value:    bit,
			Set:      set,
			Label:    label,
			Known:    known,
		})
	}
	return results
}

// BitWidth returns the number of binary digits needed to show both value and
// every configured key.
func BitWidth(d *Dictionary, value uint64) int {
	width := bits.Len64(d.MaxKey())
	if n := bits.Len64(value); n > width {
		width = n
	}
	return width
}
