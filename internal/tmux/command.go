package tmux

import (
	"io"
	"os/exec"
	"strings"
)

type commander interface {
	Run() error
	Output() ([]byte, error)
	SetStdin(io.Reader)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

func (r realCommander) SetStdin(in io.Reader) {
	r.cmd.Stdin = in
}

var runExecCommand = func(name string, args ...string) commander {
	return realCommander{cmd: exec.Command(name, args...)}
}

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}
