package numeral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptsAllNotations(t *testing.T) {
	cases := map[string]uint64{
		"0":                    0,
		"5":                    5,
		"007":                  7,
		"0x6":                  6,
		"0xfF":                 255,
		"0b101":                5,
		"0b0":                  0,
		"18446744073709551615": 1<<64 - 1,
	}
	for text, want := range cases {
		got, ok := Parse(text)
		require.Truef(t, ok, "expected %q to parse", text)
		assert.Equalf(t, want, got, "value for %q", text)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, text := range []string{
		"",
		"abc",
		"0x",
		"0b",
		"0b102",
		"0xg1",
		"0X10",
		"-1",
		" 5",
		"5 ",
		"1.5",
		"18446744073709551616",
	} {
		_, ok := Parse(text)
		assert.Falsef(t, ok, "expected %q to be rejected", text)
	}
}

func TestSyntax(t *testing.T) {
	assert.Equal(t, Dec, Syntax("42"))
	assert.Equal(t, Hex, Syntax("0x2A"))
	assert.Equal(t, Bin, Syntax("0b101010"))
	assert.Equal(t, Base(0), Syntax("forty-two"))
	assert.Equal(t, Base(0), Syntax(""))
}

func TestBaseString(t *testing.T) {
	assert.Equal(t, "Dec", Dec.String())
	assert.Equal(t, "Hex", Hex.String())
	assert.Equal(t, "Binary", Bin.String())
	assert.Equal(t, "Base(8)", Base(8).String())
	assert.False(t, Base(8).Valid())
	assert.Equal(t, []Base{Dec, Hex, Bin}, Bases())
}

func TestParseBase(t *testing.T) {
	for text, want := range map[string]Base{"hex": Hex, " 16": Hex, "DEC": Dec, "binary": Bin, "2": Bin} {
		got, err := ParseBase(text)
		require.NoErrorf(t, err, "base %q", text)
		assert.Equal(t, want, got)
	}
	_, err := ParseBase("octal")
	assert.Error(t, err)
}
