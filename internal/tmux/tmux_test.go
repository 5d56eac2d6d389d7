package tmux

import (
	"errors"
	"io"
	"os/user"
	"path/filepath"
	"reflect"
	"testing"
)

type fakeCommand struct {
	name   string
	args   []string
	stdin  string
	output []byte
	err    error
}

func (f *fakeCommand) Run() error {
	return f.err
}

func (f *fakeCommand) Output() ([]byte, error) {
	return f.output, f.err
}

func (f *fakeCommand) SetStdin(in io.Reader) {
	data, _ := io.ReadAll(in)
	f.stdin = string(data)
}

func withStubCommander(t *testing.T, output []byte, err error) *[]*fakeCommand {
	t.Helper()
	prev := runExecCommand
	var calls []*fakeCommand
	runExecCommand = func(name string, args ...string) commander {
		cmd := &fakeCommand{name: name, args: append([]string(nil), args...), output: output, err: err}
		calls = append(calls, cmd)
		return cmd
	}
	t.Cleanup(func() { runExecCommand = prev })
	return &calls
}

func TestResolveSocketPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		got, err := ResolveSocketPath("/tmp/flag")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/tmp/flag" {
			t.Fatalf("expected /tmp/flag, got %q", got)
		}
	})
	t.Run("env overrides", func(t *testing.T) {
		t.Setenv(SocketEnv, "/tmp/env")
		got, err := ResolveSocketPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/tmp/env" {
			t.Fatalf("expected /tmp/env, got %q", got)
		}
	})
	t.Run("tmux env fallback", func(t *testing.T) {
		t.Setenv(SocketEnv, "")
		t.Setenv("TMUX", "/tmp/socket,123,0")
		got, err := ResolveSocketPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/tmp/socket" {
			t.Fatalf("expected /tmp/socket, got %q", got)
		}
	})
	t.Run("default path", func(t *testing.T) {
		t.Setenv(SocketEnv, "")
		t.Setenv("TMUX", "")
		t.Setenv("TMUX_TMPDIR", "/tmp")
		u, _ := user.Current()
		got, err := ResolveSocketPath("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := filepath.Join("/tmp", "tmux-"+u.Uid, "default")
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})
}

func TestLoadBufferPipesText(t *testing.T) {
	calls := withStubCommander(t, nil, nil)
	if err := LoadBuffer("/tmp/sock", "0b100"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one command, got %d", len(*calls))
	}
	cmd := (*calls)[0]
	want := []string{"-S", "/tmp/sock", "load-buffer", "-w", "-"}
	if cmd.name != "tmux" || !reflect.DeepEqual(cmd.args, want) {
		t.Fatalf("unexpected command %s %v", cmd.name, cmd.args)
	}
	if cmd.stdin != "0b100" {
		t.Fatalf("expected stdin 0b100, got %q", cmd.stdin)
	}
}

func TestLoadBufferWrapsError(t *testing.T) {
	boom := errors.New("boom")
	withStubCommander(t, nil, boom)
	err := LoadBuffer("", "x")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestShowBuffer(t *testing.T) {
	calls := withStubCommander(t, []byte("0x4"), nil)
	got, err := ShowBuffer("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0x4" {
		t.Fatalf("expected 0x4, got %q", got)
	}
	if want := []string{"show-buffer"}; !reflect.DeepEqual((*calls)[0].args, want) {
		t.Fatalf("unexpected args %v", (*calls)[0].args)
	}
}

func TestDisplayMessageSkipsEmpty(t *testing.T) {
	calls := withStubCommander(t, nil, nil)
	if err := DisplayMessage("", "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 0 {
		t.Fatalf("expected no commands, got %d", len(*calls))
	}
	if err := DisplayMessage("", "copied 0x4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one command, got %d", len(*calls))
	}
}
