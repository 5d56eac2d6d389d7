package state

import (
	"github.com/atomicstack/tmux-bitflags/internal/action"
	"github.com/atomicstack/tmux-bitflags/internal/session"
)

// Item is one row of a level. Rows on an action level carry the action to
// run against Entry; Step rows continue the chain with Entry.State instead.
type Item struct {
	ID     string
	Label  string
	Detail string
	Entry  session.Entry
	Action action.Action
	Step   bool
}

// EntryItems wraps suggestion entries as level rows.
func EntryItems(entries []session.Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{ID: e.ID(), Label: e.Label, Detail: e.Detail, Entry: e}
	}
	return items
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
