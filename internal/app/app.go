package app

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/atomicstack/tmux-bitflags/internal/backend"
	"github.com/atomicstack/tmux-bitflags/internal/clipboard"
	"github.com/atomicstack/tmux-bitflags/internal/dictfile"
	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/logging"
	"github.com/atomicstack/tmux-bitflags/internal/logging/events"
	"github.com/atomicstack/tmux-bitflags/internal/tmux"
	"github.com/atomicstack/tmux-bitflags/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	FlagsFile    string
	Dictionaries []string
	Watch        bool
	Clipboard    clipboard.Mode
}

var (
	displayMessage = tmux.DisplayMessage
	runProgram     = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

// LoadCatalog reads the dictionary file and keeps the dictionaries matching
// patterns. A missing file yields an empty catalog so the popup can still
// start and pick the file up once it is created.
func LoadCatalog(path string, patterns []string) (*flags.Catalog, error) {
	res, err := dictfile.Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		logging.Warn("dictionary file not found", map[string]interface{}{"path": path})
	} else {
		res.Report(false)
	}
	logging.SetDebugEnabled(res.Debug)
	catalog, err := res.Catalog.Select(patterns...)
	if err != nil {
		return nil, err
	}
	logging.Debugf("loaded %d dictionaries from %s", catalog.Len(), path)
	return catalog, nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	catalog, err := LoadCatalog(cfg.FlagsFile, cfg.Dictionaries)
	if err != nil {
		return err
	}
	store := flags.NewStore(catalog)

	var watcher *backend.Watcher
	if cfg.Watch {
		watcher = backend.NewWatcher(cfg.FlagsFile, backend.DefaultDebounce)
		defer watcher.Stop()
	}

	model := ui.NewModel(ui.Options{
		SocketPath:   socketPath,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		Dictionaries: cfg.Dictionaries,
	}, store, watcher, clipboard.New(cfg.Clipboard, socketPath))

	err = runProgram(model)
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Exit("killed")
		return nil
	}
	if err != nil {
		return err
	}
	res, ok := model.Result()
	if !ok {
		events.App.Exit("cancelled")
		return nil
	}
	if cfg.Verbose {
		if err := displayMessage(socketPath, copyMessage(res)); err != nil {
			logging.Error(err)
		}
	}
	events.App.Exit("copied")
	return nil
}

func copyMessage(res ui.CopyResult) string {
	if res.Err != nil {
		return fmt.Sprintf("Copy failed: %v", res.Err)
	}
	return fmt.Sprintf("Copied %s", res.Text)
}
