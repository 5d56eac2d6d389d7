package numeral

import (
	"fmt"
	"strconv"
	"strings"
)

// Base identifies the notation a number is written or displayed in.
type Base int

const (
	Dec Base = 10
	Hex Base = 16
	Bin Base = 2
)

const (
	hexPrefix = "0x"
	binPrefix = "0b"
)

// String returns the short display name used for value views.
func (b Base) String() string {
	switch b {
	case Dec:
		return "Dec"
	case Hex:
		return "Hex"
	case Bin:
		return "Binary"
	default:
		return "Base(" + strconv.Itoa(int(b)) + ")"
	}
}

// Valid reports whether b is one of the supported bases.
func (b Base) Valid() bool {
	return b == Dec || b == Hex || b == Bin
}

// ParseBase accepts a base by name or radix, e.g. "hex" or "16".
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dec", "decimal", "10":
		return Dec, nil
	case "hex", "hexadecimal", "16":
		return Hex, nil
	case "bin", "binary", "2":
		return Bin, nil
	}
	return 0, fmt.Errorf("unknown base %q", s)
}

// Bases lists the supported bases in display order.
func Bases() []Base {
	return []Base{Dec, Hex, Bin}
}

// Parse reads a decimal, 0x-prefixed hexadecimal or 0b-prefixed binary
// numeral. The second result is false for anything else, including values
// that do not fit in 64 bits and the empty string.
func Parse(text string) (uint64, bool) {
	base, digits := split(text)
	if base == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, int(base), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Syntax returns the base text is written in, or 0 when text is not a
// well-formed numeral.
func Syntax(text string) Base {
	base, _ := split(text)
	return base
}

func split(text string) (Base, string) {
	switch {
	case strings.HasPrefix(text, hexPrefix):
		digits := text[len(hexPrefix):]
		if digits != "" && all(digits, isHexDigit) {
			return Hex, digits
		}
	case strings.HasPrefix(text, binPrefix):
		digits := text[len(binPrefix):]
		if digits != "" && all(digits, isBinDigit) {
			return Bin, digits
		}
	}
	if text != "" && all(text, isDecDigit) {
		return Dec, text
	}
	return 0, ""
}

func all(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

func isDecDigit(c byte) bool { return c >= '0' && c <= '9' }

func isBinDigit(c byte) bool { return c == '0' || c == '1' }

func isHexDigit(c byte) bool {
	return isDecDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
