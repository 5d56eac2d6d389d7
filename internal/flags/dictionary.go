package flags

import (
	"errors"
	"fmt"
	"sort"
)

// UnknownLabel is shown for bit positions that have no configured name.
const UnknownLabel = "???"

// ErrEmptyDictionary is returned when a dictionary would have no entries.
// Decomposition needs at least one key to bound the enumeration.
var ErrEmptyDictionary = errors.New("flag dictionary has no entries")

// Dictionary maps bit values to labels for one named flag type. It is
// immutable once constructed and safe to share between goroutines.
type Dictionary struct {
	name    string
	entries map[uint64]string
	keys    []uint64
	maxKey  uint64
	union   uint64
}

// NewDictionary copies entries into a new dictionary called name.
func NewDictionary(name string, entries map[uint64]string) (*Dictionary, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("dictionary %q: %w", name, ErrEmptyDictionary)
	}
	d := &Dictionary{
		name:    name,
		entries: make(map[uint64]string, len(entries)),
		keys:    make([]uint64, 0, len(entries)),
	}
	for key, label := range entries {
		d.entries[key] = label
		d.keys = append(d.keys, key)
		d.union |= key
		if key > d.maxKey {
			d.maxKey = key
		}
	}
	sort.Slice(d.keys, func(i, j int) bool { return d.keys[i] < d.keys[j] })
	return d, nil
}

// Name returns the flag type identifier.
func (d *Dictionary) Name() string {
	return d.name
}

// Len returns the number of configured entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Label looks up the label configured for exactly value.
func (d *Dictionary) Label(value uint64) (string, bool) {
	label, ok := d.entries[value]
	return label, ok
}

// MaxKey returns the largest configured key.
func (d *Dictionary) MaxKey() uint64 {
	return d.maxKey
}

// Union returns the OR of every configured key.
func (d *Dictionary) Union() uint64 {
	return d.union
}

// Keys returns the configured keys in ascending order.
func (d *Dictionary) Keys() []uint64 {
	dup := make([]uint64, len(d.keys))
	copy(dup, d.keys)
	return dup
}
