package dictfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleINI = `
[main]
debug = true

[flags/file]
0x1 = READ
0x2 = WRITE
4 =  EXEC
0b1000 = APPEND

[flags/broken]
0xZZ = BAD
1 = ONE

[flags/empty]
nope = X

[other]
0x1 = ignored
`

func TestLoadINI(t *testing.T) {
	res, err := Load(writeFile(t, "flags.ini", sampleINI))
	require.NoError(t, err)
	assert.True(t, res.Debug)
	assert.Equal(t, []string{"broken", "file"}, res.Catalog.Names())

	file, ok := res.Catalog.Get("file")
	require.True(t, ok)
	assert.Equal(t, []uint64{1, 2, 4, 8}, file.Keys())
	label, _ := file.Label(4)
	assert.Equal(t, "EXEC", label)

	broken, ok := res.Catalog.Get("broken")
	require.True(t, ok)
	assert.Equal(t, 1, broken.Len())

	var parseErrs, sectionErrs int
	for _, w := range res.Warnings {
		var pe *ParseError
		var se *SectionError
		switch {
		case errors.As(w, &pe):
			parseErrs++
		case errors.As(w, &se):
			sectionErrs++
			assert.Equal(t, "flags/empty", se.Section)
			assert.ErrorIs(t, se, flags.ErrEmptyDictionary)
		}
	}
	assert.Equal(t, 2, parseErrs)
	assert.Equal(t, 1, sectionErrs)
}

func TestLoadINIDropsZeroKey(t *testing.T) {
	res, err := Load(writeFile(t, "flags.ini", "[flags/z]\n0 = NONE\n0x1 = ONE\n"))
	require.NoError(t, err)
	z, ok := res.Catalog.Get("z")
	require.True(t, ok)
	assert.Equal(t, []uint64{1}, z.Keys())
	require.Len(t, res.Warnings, 1)
	var pe *ParseError
	require.ErrorAs(t, res.Warnings[0], &pe)
	assert.Equal(t, "0", pe.Key)
}

func TestLoadINIWithoutMainSection(t *testing.T) {
	res, err := Load(writeFile(t, "flags.ini", "[flags/a]\n1 = A\n"))
	require.NoError(t, err)
	assert.False(t, res.Debug)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 1, res.Catalog.Len())
}

func TestLoadMissingFile(t *testing.T) {
	res, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	require.NotNil(t, res.Catalog)
	assert.Equal(t, 0, res.Catalog.Len())
}

const sampleHCL = `
debug = true

dictionary "mode" {
  flags = {
    "0x1" = "READ"
    "0x2" = "WRITE"
    "bad" = "X"
  }
}

dictionary "numbers" {
  flags = {
    "1" = 10
  }
}

dictionary "list" {
  flags = ["a", "b"]
}
`

func TestLoadHCL(t *testing.T) {
	res, err := Load(writeFile(t, "flags.hcl", sampleHCL))
	require.NoError(t, err)
	assert.True(t, res.Debug)
	assert.Equal(t, []string{"mode", "numbers"}, res.Catalog.Names())

	mode, _ := res.Catalog.Get("mode")
	assert.Equal(t, []uint64{1, 2}, mode.Keys())

	numbers, _ := res.Catalog.Get("numbers")
	label, ok := numbers.Label(1)
	assert.True(t, ok)
	assert.Equal(t, "10", label)

	require.Len(t, res.Warnings, 2)
	var pe *ParseError
	assert.ErrorAs(t, res.Warnings[0], &pe)
	var se *SectionError
	assert.ErrorAs(t, res.Warnings[1], &se)
}

func TestLoadHCLSyntaxError(t *testing.T) {
	_, err := Load(writeFile(t, "flags.hcl", "dictionary \"x\" {"))
	assert.Error(t, err)
}

func TestReportLogsDroppedEntriesAsWarnings(t *testing.T) {
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(nil) })

	res, err := Load(writeFile(t, "flags.ini", sampleINI))
	require.NoError(t, err)
	res.Report(false)

	var warnings []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "level=warning") {
			warnings = append(warnings, line)
		}
	}
	require.Len(t, warnings, 3, buf.String())
	assert.Contains(t, warnings[0], "0xZZ")
	assert.Contains(t, warnings[0], "section=flags/broken")
	assert.Contains(t, warnings[1], "nope")
	assert.Contains(t, warnings[1], "section=flags/empty")
	assert.Contains(t, warnings[2], "section=flags/empty")
	assert.NotContains(t, warnings[2], "key=")
}
