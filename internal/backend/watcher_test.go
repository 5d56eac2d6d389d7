package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeDict(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed unexpectedly")
		}
		return evt
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.ini")
	writeDict(t, path, "[flags/a]\n1 = A\n")

	w := NewWatcher(path, 20*time.Millisecond)
	t.Cleanup(func() {
		w.Stop()
		w.Wait()
	})

	writeDict(t, path, "[flags/a]\n1 = A\n[flags/b]\n2 = B\n")
	evt := nextEvent(t, w)
	if evt.Kind != KindDictionaries {
		t.Fatalf("unexpected kind %v", evt.Kind)
	}
	if evt.Err != nil {
		t.Fatalf("unexpected error %v", evt.Err)
	}
	if got := evt.Data.Catalog.Names(); len(got) != 2 || got[1] != "b" {
		t.Fatalf("expected reloaded catalog with b, got %v", got)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.ini")
	writeDict(t, path, "[flags/a]\n1 = A\n")

	w := NewWatcher(path, 20*time.Millisecond)
	t.Cleanup(func() {
		w.Stop()
		w.Wait()
	})

	writeDict(t, filepath.Join(dir, "other.ini"), "[flags/x]\n1 = X\n")
	select {
	case evt := <-w.Events():
		t.Fatalf("unexpected event for sibling file: %+v", evt)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPollerReportsRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.ini")
	writeDict(t, path, "[flags/a]\n1 = A\n")

	w := newWatcher(path, 10*time.Millisecond)
	w.startPoller(10 * time.Millisecond)
	w.closeWhenDone()
	t.Cleanup(func() {
		w.Stop()
		w.Wait()
	})

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	evt := nextEvent(t, w)
	if evt.Err == nil {
		t.Fatalf("expected load error after removal")
	}
	if evt.Data.Catalog == nil || evt.Data.Catalog.Len() != 0 {
		t.Fatalf("expected empty catalog on failure, got %+v", evt.Data.Catalog)
	}
}

func TestStopClosesEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.ini")
	writeDict(t, path, "[flags/a]\n1 = A\n")
	w := NewWatcher(path, 0)
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel not closed")
	}
}
