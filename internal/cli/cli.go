// Package cli wires the command line: the popup itself and the
// non-interactive list, decompose and copy subcommands.
package cli

import (
	"io"
	"os"

	"github.com/atomicstack/tmux-bitflags/internal/app"
	"github.com/atomicstack/tmux-bitflags/internal/clipboard"
	"github.com/atomicstack/tmux-bitflags/internal/config"
	"github.com/atomicstack/tmux-bitflags/internal/logging"
	"github.com/atomicstack/tmux-bitflags/internal/tmux"
	"github.com/spf13/cobra"
)

var (
	runApp       = app.Run
	loadCatalog  = app.LoadCatalog
	newClipboard = clipboard.New
	showBuffer   = tmux.ShowBuffer
)

// Options carries what the commands need from the process.
type Options struct {
	Args    []string
	Environ []string
	Stdout  io.Writer
	Stderr  io.Writer
	// OnConfig runs once the configuration is resolved and logging is set
	// up, before any command does its work.
	OnConfig func(config.Config)
}

// Execute runs the command line described by opts.
func Execute(opts Options) error {
	cmd := NewRootCmd(opts)
	cmd.SetArgs(opts.Args)
	return cmd.Execute()
}

// NewRootCmd builds the command tree. The root command opens the popup.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	var cfg config.Config

	root := &cobra.Command{
		Use:           "tmux-bitflags",
		Short:         "Decompose bit flag values inside a tmux popup",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.Resolve(cmd.Flags(), opts.Args, opts.Environ)
			if err != nil {
				return &config.Error{Err: err}
			}
			if err := config.Validate(resolved); err != nil {
				return &config.Error{Err: err}
			}
			logging.Configure(resolved.Logging.FilePath)
			logging.SetTraceEnabled(resolved.Logging.Trace)
			cfg = resolved
			if opts.OnConfig != nil {
				opts.OnConfig(cfg)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cfg.App)
		},
	}
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)
	config.Bind(root.PersistentFlags())

	current := func() config.Config { return cfg }
	root.AddCommand(newListCmd(current))
	root.AddCommand(newDecomposeCmd(current))
	root.AddCommand(newCopyCmd(current))
	return root
}
