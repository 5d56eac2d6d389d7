package ui

import (
	"fmt"
	"math/big"
	"math/bits"
	"strconv"

	"github.com/atomicstack/tmux-bitflags/internal/action"
	"github.com/atomicstack/tmux-bitflags/internal/format/radix"
	"github.com/atomicstack/tmux-bitflags/internal/format/table"
	"github.com/atomicstack/tmux-bitflags/internal/numeral"
	"github.com/atomicstack/tmux-bitflags/internal/session"
	uistate "github.com/atomicstack/tmux-bitflags/internal/ui/state"
	"github.com/dustin/go-humanize"
)

type previewData struct {
	label        string
	lines        []string
	err          string
	scrollOffset int
}

// activePreview describes the row under the cursor. It is rebuilt on every
// render from the store, so it never lags behind a reload.
func (m *Model) activePreview() *previewData {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	if current.Kind == uistate.KindActions {
		if current.Target == nil {
			return nil
		}
		return m.entryPreview(*current.Target)
	}
	item, ok := current.Current()
	if !ok {
		return nil
	}
	return m.entryPreview(item.Entry)
}

func (m *Model) entryPreview(e session.Entry) *previewData {
	switch e.Kind {
	case session.KindDictionary:
		return m.dictionaryPreview(e.State.Dictionary)
	case session.KindValueView:
		v := e.State.Value
		rows := make([][]string, 0, 8)
		for _, base := range numeral.Bases() {
			rows = append(rows, []string{base.String(), radix.Value(v, base)})
		}
		rows = append(rows,
			[]string{"Grouped", humanize.BigComma(new(big.Int).SetUint64(v))},
			[]string{"Bits set", strconv.Itoa(bits.OnesCount64(v))},
		)
		rows = append(rows, actionRows(e)...)
		return &previewData{label: e.Label, lines: table.Format(rows, nil)}
	case session.KindFlagBit:
		if e.Bit == nil {
			return nil
		}
		rows := [][]string{
			{"Position", humanize.Ordinal(int(e.Bit.Position)+1) + " bit"},
			{"Set", strconv.FormatBool(e.Bit.Set)},
		}
		rows = append(rows, actionRows(e)...)
		return &previewData{label: e.Bit.Label, lines: table.Format(rows, nil)}
	case session.KindFilterToggle:
		return &previewData{label: e.Label, lines: []string{e.Detail}}
	}
	return nil
}

func actionRows(e session.Entry) [][]string {
	actions := action.ForEntry(e.Kind)
	rows := make([][]string, 0, len(actions))
	for _, a := range actions {
		text, ok := action.Execute(e, a)
		if !ok {
			text = nothingNote
		}
		rows = append(rows, []string{a.Label(), text})
	}
	return rows
}

func (m *Model) dictionaryPreview(name string) *previewData {
	d, ok := m.store.Snapshot().Get(name)
	if !ok {
		return &previewData{label: name, err: staleNote}
	}
	w := radix.WidthsFor(d.MaxKey(), bits.Len64(d.MaxKey()))
	rows := make([][]string, 0, d.Len())
	for _, key := range d.Keys() {
		label, _ := d.Label(key)
		rows = append(rows, []string{radix.Number(key, numeral.Hex, w), radix.Number(key, numeral.Dec, w), label})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignLeft})
	if len(lines) == 0 {
		lines = []string{"(no flags)"}
	}
	return &previewData{label: fmt.Sprintf("%s (%d flags)", name, d.Len()), lines: lines}
}
