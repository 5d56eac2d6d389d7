package radix

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-bitflags/internal/numeral"
)

// Widths carries the zero-padding targets for one decomposition.
type Widths struct {
	// Bits is the number of binary digits shown; hex pads to Bits/4.
	Bits int
	// Decimal is the digit count of the largest configured key.
	Decimal int
}

// WidthsFor derives padding from the largest dictionary key and the bit width
// of the decomposition.
func WidthsFor(maxKey uint64, bitWidth int) Widths {
	return Widths{
		Bits:    bitWidth,
		Decimal: len(strconv.FormatUint(maxKey, 10)),
	}
}

// Number renders v in base, zero-padded according to w.
func Number(v uint64, base numeral.Base, w Widths) string {
	switch base {
	case numeral.Hex:
		return "0x" + pad(strings.ToUpper(strconv.FormatUint(v, 16)), w.Bits/4)
	case numeral.Bin:
		return "0b" + pad(strconv.FormatUint(v, 2), w.Bits)
	default:
		return pad(strconv.FormatUint(v, 10), w.Decimal)
	}
}

// Value renders v in base without padding.
func Value(v uint64, base numeral.Base) string {
	return Number(v, base, Widths{})
}

// Flag renders one bit and its label, e.g. "0b0100: WRITE".
func Flag(bit uint64, label string, base numeral.Base, w Widths) string {
	return fmt.Sprintf("%s: %s", Number(bit, base, w), label)
}

func pad(digits string, width int) string {
	if n := width - len(digits); n > 0 {
		return strings.Repeat("0", n) + digits
	}
	return digits
}
