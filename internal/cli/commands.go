package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-bitflags/internal/action"
	"github.com/atomicstack/tmux-bitflags/internal/config"
	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/format/radix"
	"github.com/atomicstack/tmux-bitflags/internal/format/table"
	"github.com/atomicstack/tmux-bitflags/internal/logging"
	"github.com/atomicstack/tmux-bitflags/internal/logging/events"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
	"github.com/atomicstack/tmux-bitflags/internal/session"
	"github.com/atomicstack/tmux-bitflags/internal/tmux"
	"github.com/spf13/cobra"
)

func newListCmd(cfg func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured dictionaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			catalog, err := loadCatalog(c.App.FlagsFile, c.App.Dictionaries)
			if err != nil {
				return err
			}
			rows := [][]string{{"NAME", "FLAGS", "DEFAULT"}}
			for _, name := range catalog.Names() {
				d, _ := catalog.Get(name)
				rows = append(rows, []string{name, strconv.Itoa(d.Len()), radix.Value(d.Union(), numeral.Hex)})
			}
			for _, line := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft}) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newDecomposeCmd(cfg func() config.Config) *cobra.Command {
	var (
		filter     string
		base       string
		token      string
		fromBuffer bool
	)
	cmd := &cobra.Command{
		Use:   "decompose [dictionary] [value]",
		Short: "Print one step of a decomposition with continuation tokens",
		Long: `Print the value views, filter toggles and flags for a value.

Each row ends with a token; pass it to --token (or to copy) to continue from
that row. Without a value the dictionary default, the union of all keys, is used.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			catalog, err := loadCatalog(c.App.FlagsFile, c.App.Dictionaries)
			if err != nil {
				return err
			}
			if fromBuffer {
				if len(args) != 1 && token == "" || len(args) != 0 && token != "" {
					return errors.New("--from-buffer replaces the value argument")
				}
				text, err := bufferValue(c.App.SocketPath)
				if err != nil {
					return err
				}
				args = append(args, text)
			}
			prior, input, err := priorState(args, token, filter, base)
			if err != nil {
				return err
			}
			entries, err := session.Suggest(catalog, input, prior)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{e.Kind.String(), e.Label, e.Detail, e.State.Token()})
			}
			for _, line := range table.Format(rows, nil) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "show only-true, only-false or all (none) flags")
	cmd.Flags().StringVar(&base, "base", "", "display flags in dec, hex or bin")
	cmd.Flags().StringVar(&token, "token", "", "continue from a token printed by an earlier call")
	cmd.Flags().BoolVar(&fromBuffer, "from-buffer", false, "take the value from the most recent tmux paste buffer")
	return cmd
}

// bufferValue reads the value to decompose from the tmux paste buffer, so a
// number copied in copy mode can be inspected directly.
func bufferValue(socketFlag string) (string, error) {
	socket, err := tmux.ResolveSocketPath(socketFlag)
	if err != nil {
		return "", fmt.Errorf("resolve socket path: %w", err)
	}
	text, err := showBuffer(socket)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("the tmux paste buffer is empty")
	}
	return text, nil
}

// priorState builds the state a step starts from. With a token the only
// positional argument is the value; otherwise the first one names the
// dictionary.
func priorState(args []string, token, filter, base string) (session.State, string, error) {
	var (
		prior session.State
		input string
	)
	switch {
	case token != "":
		st, err := session.ParseToken(token)
		if err != nil {
			return session.State{}, "", err
		}
		if len(args) > 1 {
			return session.State{}, "", errors.New("a token takes at most one value argument")
		}
		prior = st
		if len(args) == 1 {
			input = args[0]
		}
	case len(args) == 0:
		return session.State{}, "", errors.New("a dictionary name or --token is required")
	default:
		prior = session.Fresh(args[0])
		if len(args) == 2 {
			input = args[1]
		}
	}
	if filter != "" {
		f, err := flags.ParseFilter(filter)
		if err != nil {
			return session.State{}, "", err
		}
		prior = prior.WithFilter(f)
	}
	if base != "" {
		b, err := numeral.ParseBase(base)
		if err != nil {
			return session.State{}, "", err
		}
		prior = prior.WithBase(b)
	}
	if input != "" {
		if _, ok := numeral.Parse(input); !ok {
			return session.State{}, "", fmt.Errorf("%q is not a number", input)
		}
	}
	return prior, input, nil
}

func newCopyCmd(cfg func() config.Config) *cobra.Command {
	var (
		flagValue string
		actName   string
		base      string
	)
	cmd := &cobra.Command{
		Use:   "copy (token | dictionary value)",
		Short: "Copy a value or one of its flags to the clipboard",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			a, err := action.Parse(actName)
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(c.App.FlagsFile, c.App.Dictionaries)
			if err != nil {
				return err
			}
			entry, err := copyTarget(catalog, args, flagValue, base)
			if err != nil {
				return err
			}
			text, ok := action.Execute(entry, a)
			if !ok {
				events.Action.Nothing(entry.Kind.String(), a.String())
				return fmt.Errorf("%s produces nothing to copy for a %s", a, entry.Kind)
			}
			socket, err := tmux.ResolveSocketPath(c.App.SocketPath)
			if err != nil {
				return fmt.Errorf("resolve socket path: %w", err)
			}
			if err := newClipboard(c.App.Clipboard, socket).Write(text); err != nil {
				logging.Error(err)
				events.Action.Error(err)
				fmt.Fprintf(cmd.ErrOrStderr(), "clipboard: %v\n", err)
			}
			events.Action.Copy(entry.Kind.String(), a.String(), text)
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&flagValue, "flag", "", "copy the flag with this value (e.g. 4 or 0x4) instead of the whole value")
	cmd.Flags().StringVar(&actName, "action", "", "copy_dez, copy_hex, copy_bin or copy_name (default: the entry's own output)")
	cmd.Flags().StringVar(&base, "base", "", "base of the copied value when no token fixes it")
	return cmd
}

// copyTarget resolves the entry a copy acts on: the value view in the
// requested base, or the flag whose value is flagValue.
func copyTarget(c *flags.Catalog, args []string, flagValue, base string) (session.Entry, error) {
	var (
		prior session.State
		input string
	)
	if len(args) == 1 {
		st, err := session.ParseToken(args[0])
		if err != nil {
			return session.Entry{}, err
		}
		prior = st
	} else {
		prior = session.Fresh(args[0]).WithBase(numeral.Dec)
		input = args[1]
		if _, ok := numeral.Parse(input); !ok {
			return session.Entry{}, fmt.Errorf("%q is not a number", input)
		}
	}
	if base != "" {
		b, err := numeral.ParseBase(base)
		if err != nil {
			return session.Entry{}, err
		}
		prior = prior.WithBase(b)
	}
	entries, err := session.Suggest(c, input, prior)
	if err != nil {
		return session.Entry{}, err
	}
	if flagValue != "" {
		want, ok := numeral.Parse(flagValue)
		if !ok {
			return session.Entry{}, fmt.Errorf("flag %q is not a number", flagValue)
		}
		for _, e := range session.Bits(entries) {
			if e.Bit.Value == want {
				return e, nil
			}
		}
		return session.Entry{}, fmt.Errorf("flag %s is not offered for this value", flagValue)
	}
	for _, e := range entries {
		if e.Kind == session.KindValueView && e.State.Base == prior.Base {
			return e, nil
		}
	}
	return session.Entry{}, fmt.Errorf("no value view in %s", prior.Base)
}
