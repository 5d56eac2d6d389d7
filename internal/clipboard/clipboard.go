// Package clipboard delivers copied text to the places a user can paste from.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/tmux-bitflags/internal/tmux"
	atotto "github.com/atotto/clipboard"
)

// Mode names a clipboard strategy accepted on the command line.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeSystem Mode = "system"
	ModeTmux   Mode = "tmux"
	ModeNone   Mode = "none"
)

// Modes lists every accepted mode.
func Modes() []Mode {
	return []Mode{ModeAuto, ModeSystem, ModeTmux, ModeNone}
}

// ParseMode validates s. An empty string selects ModeAuto.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeAuto, nil
	}
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown clipboard mode %q", s)
}

// Writer stores text for pasting.
type Writer interface {
	Write(text string) error
}

// System writes to the desktop clipboard.
type System struct{}

var (
	systemUnsupported = func() bool { return atotto.Unsupported }
	writeSystem       = atotto.WriteAll
)

func (System) Write(text string) error {
	if systemUnsupported() {
		return errors.New("system clipboard unavailable")
	}
	return writeSystem(text)
}

// TmuxBuffer writes to the tmux paste buffer of the server at Socket.
type TmuxBuffer struct {
	Socket string
}

var loadBuffer = tmux.LoadBuffer

func (b TmuxBuffer) Write(text string) error {
	return loadBuffer(b.Socket, text)
}

// Multi writes to every writer and reports all failures together. Text that
// reached at least one writer still counts as a failure of the others.
type Multi []Writer

func (m Multi) Write(text string) error {
	var errs []error
	for _, w := range m {
		if err := w.Write(text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops everything.
type Discard struct{}

func (Discard) Write(string) error { return nil }

// New builds the writer for mode. ModeAuto prefers the tmux buffer when
// running inside tmux and adds the system clipboard when one is available.
func New(mode Mode, socket string) Writer {
	switch mode {
	case ModeSystem:
		return System{}
	case ModeTmux:
		return TmuxBuffer{Socket: socket}
	case ModeNone:
		return Discard{}
	}
	var writers Multi
	if os.Getenv("TMUX") != "" || socket != "" {
		writers = append(writers, TmuxBuffer{Socket: socket})
	}
	if !systemUnsupported() {
		writers = append(writers, System{})
	}
	switch len(writers) {
	case 0:
		return Discard{}
	case 1:
		return writers[0]
	}
	return writers
}
