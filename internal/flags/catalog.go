package flags

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/gobwas/glob"
)

// Catalog is an immutable snapshot of every loaded dictionary.
type Catalog struct {
	dicts map[string]*Dictionary
	names []string
}

// NewCatalog builds a catalog. Later dictionaries replace earlier ones with
// the same name.
func NewCatalog(dicts ...*Dictionary) *Catalog {
	c := &Catalog{dicts: make(map[string]*Dictionary, len(dicts))}
	for _, d := range dicts {
		if d == nil {
			continue
		}
		c.dicts[d.Name()] = d
	}
	c.names = make([]string, 0, len(c.dicts))
	for name := range c.dicts {
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c
}

// Get resolves a dictionary by name.
func (c *Catalog) Get(name string) (*Dictionary, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.dicts[name]
	return d, ok
}

// Names returns dictionary names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	dup := make([]string, len(c.names))
	copy(dup, c.names)
	return dup
}

// Len returns the number of dictionaries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Select returns a catalog restricted to dictionaries whose names match at
// least one glob pattern. With no patterns the receiver is returned as is.
func (c *Catalog) Select(patterns ...string) (*Catalog, error) {
	if len(patterns) == 0 {
		return c, nil
	}
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("dictionary pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	kept := make([]*Dictionary, 0, c.Len())
	for _, name := range c.Names() {
		for _, g := range globs {
			if g.Match(name) {
				kept = append(kept, c.dicts[name])
				break
			}
		}
	}
	return NewCatalog(kept...), nil
}

// Store holds the process-wide catalog. Swap replaces the whole set at once;
// readers take one Snapshot per request and never observe a partial reload.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns a store seeded with c.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.Swap(c)
	return s
}

// Snapshot returns the catalog currently in effect. It is never nil.
func (s *Store) Snapshot() *Catalog {
	if c := s.current.Load(); c != nil {
		return c
	}
	return NewCatalog()
}

// Swap installs c as the current catalog.
func (s *Store) Swap(c *Catalog) {
	if c == nil {
		c = NewCatalog()
	}
	s.current.Store(c)
}
