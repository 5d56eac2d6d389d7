// Package tmux talks to the tmux server that hosts the popup.
package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// SocketEnv overrides socket discovery when no explicit path is given.
const SocketEnv = "TMUX_BITFLAGS_SOCKET"

// ResolveSocketPath picks the tmux socket: the explicit value, then
// $TMUX_BITFLAGS_SOCKET, then the socket of the enclosing tmux session, then
// tmux's own default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv(SocketEnv); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// LoadBuffer stores text in the tmux paste buffer and asks tmux to forward it
// to the outer terminal's clipboard.
func LoadBuffer(socketPath, text string) error {
	args := append(baseArgs(socketPath), "load-buffer", "-w", "-")
	cmd := runExecCommand("tmux", args...)
	cmd.SetStdin(strings.NewReader(text))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("load-buffer: %w", err)
	}
	return nil
}

// ShowBuffer returns the most recent paste buffer.
func ShowBuffer(socketPath string) (string, error) {
	args := append(baseArgs(socketPath), "show-buffer")
	output, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return "", fmt.Errorf("show-buffer: %w", err)
	}
	return string(output), nil
}

// DisplayMessage shows a short status line message on the attached client.
func DisplayMessage(socketPath, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	args := append(baseArgs(socketPath), "display-message", "-d", "1500", message)
	return runExecCommand("tmux", args...).Run()
}
