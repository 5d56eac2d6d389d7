// Package dictfile reads flag dictionaries from a configuration file.
//
// Two formats are understood, selected by file extension. The INI format
// keeps one dictionary per "[flags/<name>]" section:
//
//	[main]
//	debug = false
//
//	[flags/file]
//	0x1 = READ
//	0x2 = WRITE
//
// The HCL format (".hcl") uses labelled blocks:
//
//	debug = false
//
//	dictionary "file" {
//	  flags = {
//	    "0x1" = "READ"
//	  }
//	}
//
// A key that is not a numeral drops only that entry; any other problem with
// a dictionary skips the whole dictionary. Both are returned as warnings and
// never stop the remaining dictionaries from loading.
package dictfile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/logging/events"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
)

// SectionPrefix marks INI sections that hold a dictionary.
const SectionPrefix = "flags/"

// Result is the outcome of one load.
type Result struct {
	Path     string
	Catalog  *flags.Catalog
	Debug    bool
	Warnings []error
}

// ParseError reports one configured key that was dropped.
type ParseError struct {
	Section string
	Key     string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%s] %s %s", e.Section, e.Key, e.Reason)
}

// SectionError reports a dictionary that was skipped entirely.
type SectionError struct {
	Section string
	Err     error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("error while reading config section %q: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}

// Load reads the dictionary file at path. Only an unreadable or
// syntactically broken file is returned as an error.
func Load(path string) (Result, error) {
	var (
		res Result
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		res, err = loadHCL(path)
	default:
		res, err = loadINI(path)
	}
	if err != nil {
		return Result{Path: path, Catalog: flags.NewCatalog()}, fmt.Errorf("load %s: %w", path, err)
	}
	res.Path = path
	return res, nil
}

// Report logs every warning of r and traces the load.
func (r Result) Report(reload bool) {
	for _, w := range r.Warnings {
		var pe *ParseError
		var se *SectionError
		switch {
		case errors.As(w, &pe):
			events.Config.Dropped(pe.Section, pe.Key, pe)
		case errors.As(w, &se):
			events.Config.SectionFailed(se.Section, se)
		default:
			events.Config.SectionFailed("", w)
		}
	}
	if reload {
		events.Config.Reloaded(r.Path, r.Catalog.Names())
		return
	}
	events.Config.Loaded(r.Path, r.Catalog.Names(), len(r.Warnings))
}

// builder accumulates the entries of one dictionary.
type builder struct {
	section  string
	name     string
	entries  map[uint64]string
	warnings []error
}

func newBuilder(section, name string) *builder {
	return &builder{section: section, name: name, entries: make(map[uint64]string)}
}

func (b *builder) add(key, label string) {
	value, ok := numeral.Parse(key)
	if !ok {
		b.warnings = append(b.warnings, &ParseError{Section: b.section, Key: key, Reason: "could not be interpreted as number"})
		return
	}
	if value == 0 {
		b.warnings = append(b.warnings, &ParseError{Section: b.section, Key: key, Reason: "is zero and cannot name a flag"})
		return
	}
	b.entries[value] = strings.TrimSpace(label)
}

func (b *builder) build() (*flags.Dictionary, []error) {
	if strings.TrimSpace(b.name) == "" {
		return nil, append(b.warnings, &SectionError{Section: b.section, Err: errors.New("dictionary name is empty")})
	}
	d, err := flags.NewDictionary(b.name, b.entries)
	if err != nil {
		return nil, append(b.warnings, &SectionError{Section: b.section, Err: err})
	}
	return d, b.warnings
}
