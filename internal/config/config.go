package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-bitflags/internal/app"
	"github.com/atomicstack/tmux-bitflags/internal/clipboard"
	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
	Watch   bool
}

// EnvPrefix is prepended to every option name when read from the environment,
// e.g. TMUX_BITFLAGS_FLAGS_FILE for --flags-file.
const EnvPrefix = "TMUX_BITFLAGS"

// DefaultFlagsFile is used when neither --flags-file nor the environment name one.
const DefaultFlagsFile = "~/.config/tmux-bitflags/flags.ini"

const (
	keyFlagsFile = "flags-file"
	keySocket    = "socket"
	keyWidth     = "width"
	keyHeight    = "height"
	keyFooter    = "footer"
	keyVerbose   = "verbose"
	keyTrace     = "trace"
	keyLogFile   = "log-file"
	keyDicts     = "dicts"
	keyNoWatch   = "no-watch"
	keyClipboard = "clipboard"
	keyEnvFile   = "env-file"
)

// Bind declares every runtime option on fs.
func Bind(fs *pflag.FlagSet) {
	fs.String(keyFlagsFile, DefaultFlagsFile, "path to the flag dictionary file (.ini or .hcl)")
	fs.String(keySocket, "", "path to the tmux socket (overrides environment detection)")
	fs.Int(keyWidth, 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int(keyHeight, 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Bool(keyFooter, false, "enable footer hint row (disabled by default)")
	fs.Bool(keyVerbose, false, "show a status message after copying")
	fs.Bool(keyTrace, false, "enable verbose JSON trace logging")
	fs.String(keyLogFile, "", "path to the log file")
	fs.StringSlice(keyDicts, nil, "only offer dictionaries matching these glob patterns")
	fs.Bool(keyNoWatch, false, "do not reload the dictionary file when it changes")
	fs.String(keyClipboard, string(clipboard.ModeAuto), "clipboard target: auto, system, tmux or none")
	fs.String(keyEnvFile, "", "read TMUX_BITFLAGS_* settings from a dotenv file")
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("tmux-bitflags", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	Bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return Resolve(fs, args, environ)
}

// Resolve merges the parsed flags in fs with environ. Explicit flags win over
// the environment, which wins over an --env-file, which wins over defaults.
func Resolve(fs *pflag.FlagSet, args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	envFile, _ := fs.GetString(keyEnvFile)
	if !fs.Changed(keyEnvFile) {
		if v, ok := env[envName(keyEnvFile)]; ok {
			envFile = v
		}
	}
	if strings.TrimSpace(envFile) != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil {
			return Config{}, fmt.Errorf("read env file: %w", err)
		}
		for k, v := range fileEnv {
			if _, ok := env[k]; !ok {
				env[k] = v
			}
		}
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}
	fs.VisitAll(func(f *pflag.Flag) {
		if value, ok := env[envName(f.Name)]; ok && strings.TrimSpace(value) != "" {
			v.SetDefault(f.Name, value)
		}
	})

	flagsFile, err := homedir.Expand(strings.TrimSpace(v.GetString(keyFlagsFile)))
	if err != nil {
		return Config{}, fmt.Errorf("expand %s: %w", keyFlagsFile, err)
	}
	logFile, err := homedir.Expand(strings.TrimSpace(v.GetString(keyLogFile)))
	if err != nil {
		return Config{}, fmt.Errorf("expand %s: %w", keyLogFile, err)
	}

	width := intValue(v, keyWidth)
	height := intValue(v, keyHeight)
	footer := v.GetBool(keyFooter)
	verbose := v.GetBool(keyVerbose)
	trace := v.GetBool(keyTrace)
	watch := !v.GetBool(keyNoWatch)
	dicts := listValue(v, keyDicts)
	socket := v.GetString(keySocket)
	mode := clipboard.Mode(strings.ToLower(strings.TrimSpace(v.GetString(keyClipboard))))

	cfg := Config{
		App: app.Config{
			SocketPath:   socket,
			Width:        width,
			Height:       height,
			ShowFooter:   footer,
			Verbose:      verbose,
			FlagsFile:    flagsFile,
			Dictionaries: dicts,
			Watch:        watch,
			Clipboard:    mode,
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    trace,
		},
		Features: Features{
			Verbose: verbose,
			Watch:   watch,
		},
		Flags: map[string]string{
			"flagsFile": flagsFile,
			"socket":    socket,
			"width":     strconv.Itoa(width),
			"height":    strconv.Itoa(height),
			"footer":    strconv.FormatBool(footer),
			"trace":     strconv.FormatBool(trace),
			"verbose":   strconv.FormatBool(verbose),
			"logFile":   logFile,
			"dicts":     strings.Join(dicts, ","),
			"watch":     strconv.FormatBool(watch),
			"clipboard": string(mode),
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

func envName(flag string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

// intValue falls back to zero for values that are not integers.
func intValue(v *viper.Viper, key string) int {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}

// listValue accepts both repeated flags and comma separated environment values.
func listValue(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Error marks a configuration that could not be resolved or is invalid.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if strings.TrimSpace(cfg.App.FlagsFile) == "" {
		return fmt.Errorf("flags file must not be empty")
	}
	if _, err := clipboard.ParseMode(string(cfg.App.Clipboard)); err != nil {
		modes := make([]string, 0, len(clipboard.Modes()))
		for _, m := range clipboard.Modes() {
			modes = append(modes, string(m))
		}
		sort.Strings(modes)
		return fmt.Errorf("%w (expected one of %s)", err, strings.Join(modes, ", "))
	}
	return nil
}
