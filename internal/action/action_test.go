package action

import (
	"testing"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
	"github.com/atomicstack/tmux-bitflags/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggest(t *testing.T, dict map[uint64]string, input string) []session.Entry {
	t.Helper()
	d, err := flags.NewDictionary("test", dict)
	require.NoError(t, err)
	entries, err := session.Suggest(flags.NewCatalog(d), input, session.Fresh("test"))
	require.NoError(t, err)
	return entries
}

func TestExecuteValueViewUsesOwnBase(t *testing.T) {
	entries := suggest(t, map[uint64]string{1: "A", 2: "B", 4: "C"}, "6")
	want := []string{"6", "0x6", "0b110"}
	for i, w := range want {
		view := entries[i]
		require.Equal(t, session.KindValueView, view.Kind)
		for _, a := range []Action{Default, CopyDez, CopyHex, CopyBin} {
			got, ok := Execute(view, a)
			assert.True(t, ok)
			assert.Equalf(t, w, got, "view %d action %q", i, a)
		}
		_, ok := Execute(view, CopyName)
		assert.False(t, ok, "copy_name is invalid for value views")
	}
}

func TestExecuteFlagBit(t *testing.T) {
	bits := session.Bits(suggest(t, map[uint64]string{1: "A", 2: "B", 4: "C"}, "5"))
	require.Len(t, bits, 3)
	c := bits[2]

	cases := map[Action]string{
		Default:  "0b100",
		CopyBin:  "0b100",
		CopyDez:  "4",
		CopyHex:  "0x4",
		CopyName: "C",
	}
	for a, want := range cases {
		got, ok := Execute(c, a)
		assert.True(t, ok)
		assert.Equalf(t, want, got, "action %q", a)
	}
}

func TestExecuteFlagBitIgnoresAmbientBase(t *testing.T) {
	d, err := flags.NewDictionary("test", map[uint64]string{8: "D"})
	require.NoError(t, err)
	entries, err := session.Suggest(flags.NewCatalog(d), "8", session.Fresh("test").WithBase(numeral.Hex))
	require.NoError(t, err)
	bits := session.Bits(entries)
	got, ok := Execute(bits[3], CopyDez)
	assert.True(t, ok)
	assert.Equal(t, "8", got)
}

func TestExecuteUnknownFlagName(t *testing.T) {
	bits := session.Bits(suggest(t, map[uint64]string{1: "A"}, "3"))
	got, ok := Execute(bits[1], CopyName)
	assert.True(t, ok)
	assert.Equal(t, flags.UnknownLabel, got)
}

func TestExecuteEmptyLabelCopiesNothing(t *testing.T) {
	bits := session.Bits(suggest(t, map[uint64]string{1: ""}, "1"))
	_, ok := Execute(bits[0], CopyName)
	assert.False(t, ok)
}

func TestExecuteNonCopyableKinds(t *testing.T) {
	entries := suggest(t, map[uint64]string{1: "A"}, "1")
	for _, e := range entries {
		if e.Kind != session.KindFilterToggle {
			continue
		}
		_, ok := Execute(e, Default)
		assert.False(t, ok)
	}
	_, ok := Execute(session.Entry{Kind: session.KindDictionary, Label: "x"}, Default)
	assert.False(t, ok)
	assert.Nil(t, ForEntry(session.KindDictionary))
}

func TestParse(t *testing.T) {
	a, err := Parse("copy_hex")
	require.NoError(t, err)
	assert.Equal(t, CopyHex, a)
	_, err = Parse("copy_oct")
	assert.Error(t, err)
	assert.Equal(t, "Copy name of flag", CopyName.Label())
}
