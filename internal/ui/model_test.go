package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-bitflags/internal/backend"
	"github.com/atomicstack/tmux-bitflags/internal/dictfile"
	"github.com/atomicstack/tmux-bitflags/internal/flags"
	"github.com/atomicstack/tmux-bitflags/internal/session"
	uistate "github.com/atomicstack/tmux-bitflags/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type recordingClipboard struct {
	texts []string
	err   error
}

func (r *recordingClipboard) Write(text string) error {
	r.texts = append(r.texts, text)
	return r.err
}

func mustDictionary(t *testing.T, name string, entries map[uint64]string) *flags.Dictionary {
	t.Helper()
	d, err := flags.NewDictionary(name, entries)
	if err != nil {
		t.Fatalf("dictionary %s: %v", name, err)
	}
	return d
}

func testCatalog(t *testing.T) *flags.Catalog {
	t.Helper()
	return flags.NewCatalog(
		mustDictionary(t, "file", map[uint64]string{1: "READ", 2: "WRITE", 4: "EXEC"}),
		mustDictionary(t, "mode", map[uint64]string{1: "FAST"}),
	)
}

func newTestModel(t *testing.T, opts Options) (*Model, *recordingClipboard) {
	t.Helper()
	clip := &recordingClipboard{}
	m := NewModel(opts, flags.NewStore(testCatalog(t)), nil, clip)
	// a static cursor keeps BlinkCmd from sleeping inside the harness
	m.filterCursor.SetMode(cursor.CursorStatic)
	return m, clip
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(h *Harness, text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func labels(l *level) []string {
	out := make([]string, len(l.Items))
	for i, item := range l.Items {
		out[i] = item.Label
	}
	return out
}

func TestRootListsDictionaries(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	root := m.currentLevel()
	if root.Kind != uistate.KindRoot {
		t.Fatalf("expected root level, got %v", root.Kind)
	}
	if got := strings.Join(labels(root), ","); got != "file,mode" {
		t.Fatalf("unexpected root items %q", got)
	}
	if got := m.menuHeader(); got != defaultRootTitle {
		t.Fatalf("expected header %q, got %q", defaultRootTitle, got)
	}
}

func TestRootWithoutDictionariesShowsNote(t *testing.T) {
	m := NewModel(Options{}, nil, nil, nil)
	if !strings.Contains(m.View(), "No dictionaries configured.") {
		t.Fatalf("expected empty catalog note, got:\n%s", m.View())
	}
}

func TestRootFilterNarrowsDictionaries(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	typeText(h, "mo")
	if got := strings.Join(labels(m.currentLevel()), ","); got != "mode" {
		t.Fatalf("expected only mode, got %q", got)
	}
}

func TestOpenDictionaryUsesUnionAsDefault(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))

	current := m.currentLevel()
	if current.Kind != uistate.KindDecompose {
		t.Fatalf("expected decomposition level, got %v", current.Kind)
	}
	got := labels(current)
	want := []string{"7", "0x7", "0b111", "Show only True flags", "Show only False flags", "true", "true", "true"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if detail := current.Items[5].Detail; detail != "0b001: READ" {
		t.Fatalf("expected formatted flag detail, got %q", detail)
	}
	if header := m.menuHeader(); header != "dictionaries→file" {
		t.Fatalf("unexpected header %q", header)
	}
}

func TestTypingRecomputesSuggestions(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	typeText(h, "5")

	current := m.currentLevel()
	if current.Items[0].Label != "5" {
		t.Fatalf("expected value 5, got %q", current.Items[0].Label)
	}
	flagsShown := labels(current)[5:]
	if strings.Join(flagsShown, ",") != "true,false,true" {
		t.Fatalf("unexpected flags %v", flagsShown)
	}

	h.Send(key(tea.KeyCtrlU))
	typeText(h, "0x")
	if current.Items[0].Label != "7" {
		t.Fatalf("expected unparsable input to fall back to the default, got %q", current.Items[0].Label)
	}
	typeText(h, "2")
	if current.Items[0].Label != "2" {
		t.Fatalf("expected value 2, got %q", current.Items[0].Label)
	}
	if current.Cursor != 0 {
		t.Fatalf("expected cursor reset to first row, got %d", current.Cursor)
	}
}

func TestEnterOnValueViewCopiesAndQuits(t *testing.T) {
	m, clip := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	typeText(h, "0b101")
	h.Send(key(tea.KeyDown)) // hex view
	h.Send(key(tea.KeyEnter))

	if !h.Quit() {
		t.Fatalf("expected the popup to quit after copying")
	}
	if len(clip.texts) != 1 || clip.texts[0] != "0x5" {
		t.Fatalf("expected 0x5 on the clipboard, got %v", clip.texts)
	}
	res, ok := m.Result()
	if !ok || res.Text != "0x5" || res.Kind != session.KindValueView || res.Action != "default" {
		t.Fatalf("unexpected result %+v (ok=%v)", res, ok)
	}
}

func TestFilterToggleAdvancesChain(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	typeText(h, "5")
	for i := 0; i < 3; i++ {
		h.Send(key(tea.KeyDown))
	}
	h.Send(key(tea.KeyEnter)) // show only true flags

	current := m.currentLevel()
	if len(m.stack) != 3 {
		t.Fatalf("expected three levels, got %d", len(m.stack))
	}
	if current.State.Filter != flags.FilterOnlyTrue || current.State.Value != 5 {
		t.Fatalf("unexpected carried state %+v", current.State)
	}
	bits := labels(current)[5:]
	if strings.Join(bits, ",") != "0b001: READ,0b100: EXEC" {
		t.Fatalf("unexpected set flags %v", bits)
	}
	if current.Filter != "" {
		t.Fatalf("expected a fresh prompt, got %q", current.Filter)
	}
}

func TestTabOpensActionsForFlag(t *testing.T) {
	m, clip := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	for i := 0; i < 5; i++ {
		h.Send(key(tea.KeyDown))
	}
	h.Send(key(tea.KeyTab))

	current := m.currentLevel()
	if current.Kind != uistate.KindActions || current.Target == nil {
		t.Fatalf("expected action level with target, got %+v", current)
	}
	want := []string{"0b1", "1", "0x1", "READ", "0b110"}
	for i, item := range current.Items {
		if item.Detail != want[i] {
			t.Fatalf("row %d: expected detail %q, got %q", i, want[i], item.Detail)
		}
	}
	if last := current.Items[len(current.Items)-1]; !last.Step || last.Label != "Toggle flag" {
		t.Fatalf("expected toggle step last, got %+v", last)
	}

	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyEnter))
	if !h.Quit() || len(clip.texts) != 1 || clip.texts[0] != "READ" {
		t.Fatalf("expected flag name copied, got %v", clip.texts)
	}
}

func TestToggleStepPushesToggledValue(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	for i := 0; i < 5; i++ {
		h.Send(key(tea.KeyDown))
	}
	h.Send(key(tea.KeyTab))
	h.Send(key(tea.KeyEnd))
	h.Send(key(tea.KeyEnter))

	current := m.currentLevel()
	if current.Kind != uistate.KindDecompose {
		t.Fatalf("expected decomposition level, got %v", current.Kind)
	}
	if current.Items[0].Label != "6" {
		t.Fatalf("expected toggled value 6, got %q", current.Items[0].Label)
	}
}

func TestTabIgnoredOnFilterToggle(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	for i := 0; i < 3; i++ {
		h.Send(key(tea.KeyDown))
	}
	h.Send(key(tea.KeyTab))
	if len(m.stack) != 2 {
		t.Fatalf("expected tab on a filter toggle to do nothing, got %d levels", len(m.stack))
	}
}

func TestEscapePopsThenQuits(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyEnter))
	m.errMsg = "previous error"
	h.Send(key(tea.KeyEsc))
	if len(m.stack) != 1 {
		t.Fatalf("expected root only, got %d levels", len(m.stack))
	}
	if m.errMsg != "" {
		t.Fatalf("expected error cleared, got %q", m.errMsg)
	}
	if m.currentLevel().Cursor != 1 {
		t.Fatalf("expected cursor restored to mode, got %d", m.currentLevel().Cursor)
	}
	if h.Quit() {
		t.Fatalf("did not expect quit yet")
	}
	h.Send(key(tea.KeyEsc))
	if !h.Quit() {
		t.Fatalf("expected esc at the root to quit")
	}
}

func TestCopyFailureStillQuits(t *testing.T) {
	m, clip := newTestModel(t, Options{})
	clip.err = errors.New("no display")
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	h.Send(key(tea.KeyEnter))
	if !h.Quit() {
		t.Fatalf("expected quit after failed copy")
	}
	res, ok := m.Result()
	if !ok || res.Err == nil || res.Text != "7" {
		t.Fatalf("expected result carrying the error, got %+v", res)
	}
}

func TestCopyWithoutOutputKeepsPopupOpen(t *testing.T) {
	m, clip := newTestModel(t, Options{})
	entry := session.Entry{Kind: session.KindValueView, State: session.Fresh("file").WithValue(3)}
	if cmd := m.copyEntry(entry, "copy_name"); cmd != nil {
		t.Fatalf("expected no command for an action without output")
	}
	if m.currentInfo() != "Nothing to copy" {
		t.Fatalf("expected info message, got %q", m.currentInfo())
	}
	if len(clip.texts) != 0 {
		t.Fatalf("expected clipboard untouched, got %v", clip.texts)
	}
}

func reload(c *flags.Catalog, err error) backendEventMsg {
	return backendEventMsg{event: backend.Event{
		Kind: backend.KindDictionaries,
		Data: dictfile.Result{Path: "flags.ini", Catalog: c},
		Err:  err,
	}}
}

func TestReloadRemovingDictionaryMarksLevelsStale(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	for i := 0; i < 5; i++ {
		h.Send(key(tea.KeyDown))
	}
	h.Send(key(tea.KeyTab))

	h.Send(reload(flags.NewCatalog(mustDictionary(t, "mode", map[uint64]string{1: "FAST"})), nil))

	if got := strings.Join(labels(m.stack[0]), ","); got != "mode" {
		t.Fatalf("expected root rebuilt, got %q", got)
	}
	for _, l := range m.stack[1:] {
		if len(l.Items) != 0 || l.Note != staleNote {
			t.Fatalf("expected level %s to be stale, got %d items note %q", l.ID, len(l.Items), l.Note)
		}
	}
	if !strings.Contains(h.View(), staleNote) {
		t.Fatalf("expected view to mention the removed dictionary:\n%s", h.View())
	}
}

func TestReloadKeepsCursorOnSurvivingEntry(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnter))
	typeText(h, "1")
	h.Send(key(tea.KeyEnd))
	before, _ := m.currentLevel().Current()

	updated := flags.NewCatalog(
		mustDictionary(t, "file", map[uint64]string{1: "READ", 2: "WRITE", 4: "EXECUTE"}),
	)
	h.Send(reload(updated, nil))

	after, ok := m.currentLevel().Current()
	if !ok || after.ID != before.ID {
		t.Fatalf("expected cursor to stay on %s, got %s", before.ID, after.ID)
	}
	if after.Detail != "0b100: EXECUTE" {
		t.Fatalf("expected relabelled flag, got %q", after.Detail)
	}
}

func TestReloadAppliesDictionaryPatterns(t *testing.T) {
	m, _ := newTestModel(t, Options{Dictionaries: []string{"mo*"}})
	NewHarness(m).Send(reload(testCatalog(t), nil))
	if got := strings.Join(labels(m.currentLevel()), ","); got != "mode" {
		t.Fatalf("expected selection to apply on reload, got %q", got)
	}
}

func TestFailedReloadKeepsCatalog(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	h := NewHarness(m)
	h.Send(reload(flags.NewCatalog(), errors.New("load flags.ini: broken")))
	if m.store.Snapshot().Len() != 2 {
		t.Fatalf("expected previous catalog kept")
	}
	if !strings.Contains(h.View(), "Error: load flags.ini: broken") {
		t.Fatalf("expected error in status line:\n%s", h.View())
	}
	h.Send(reload(testCatalog(t), nil))
	if m.errMsg != "" {
		t.Fatalf("expected error cleared after a good reload, got %q", m.errMsg)
	}
}

func TestBackendDoneStopsWaiting(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m.backend = &backend.Watcher{}
	NewHarness(m).Send(backendDoneMsg{})
	if m.backend != nil {
		t.Fatalf("expected backend cleared")
	}
}
