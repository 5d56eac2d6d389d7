package state

import "github.com/atomicstack/tmux-bitflags/internal/session"

// Kind tells the model how a level reacts to typing and selection.
type Kind int

const (
	// KindRoot lists dictionaries; typing fuzzy filters them.
	KindRoot Kind = iota
	// KindDecompose shows one transition; typing replaces the value.
	KindDecompose
	// KindActions lists copy variants for one entry of the parent level.
	KindActions
)

// Level encapsulates menu level state such as cursor position, filter, and viewport.
type Level struct {
	ID             string
	Title          string
	Kind           Kind
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int

	// State is the prior state fed to session.Suggest on decomposition levels.
	State session.State
	// Target is the parent entry an action level operates on.
	Target *session.Entry
	// Note replaces the empty-list placeholder, e.g. after a reload removed
	// the dictionary this level was built from.
	Note string
}

// NewLevel constructs a Level of kind using the provided items.
func NewLevel(id, title string, kind Kind, items []Item) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		Kind:       kind,
		LastCursor: -1,
	}
	l.UpdateItems(items)
	return l
}

// Literal reports whether typed text is input rather than a filter query.
func (l *Level) Literal() bool {
	return l.Kind == KindDecompose
}

// Current returns the item under the cursor.
func (l *Level) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the index for a given item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems refreshes the level items while keeping the viewport if possible.
func (l *Level) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 {
		prevOffset = 0
	}
	if prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// Replace swaps in a fresh suggestion list and moves the cursor to the
// first row, keeping it on the entry with keepID when that entry survives.
func (l *Level) Replace(items []Item, keepID string) {
	l.UpdateItems(items)
	l.Cursor = 0
	if idx := l.IndexOf(keepID); idx >= 0 {
		l.Cursor = idx
	}
}
