package backend

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/atomicstack/tmux-bitflags/internal/dictfile"
	"github.com/atomicstack/tmux-bitflags/internal/logging/events"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDictionaries Kind = iota
)

// Event conveys a reloaded dictionary file or an error from watching it.
type Event struct {
	Kind Kind
	Data dictfile.Result
	Err  error
}

// DefaultDebounce is how long the watcher waits for a burst of writes to settle.
const DefaultDebounce = 150 * time.Millisecond

// Watcher follows the dictionary file and publishes a fresh load whenever it
// changes. The initial load is left to the caller.
type Watcher struct {
	path     string
	debounce time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. Editors that replace the file on save are
// handled by watching the containing directory. When the platform offers no
// file notifications the watcher falls back to polling every second.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	w := newWatcher(path, debounce)
	fw, err := fsnotify.NewWatcher()
	if err == nil {
		if err = fw.Add(filepath.Dir(w.path)); err != nil {
			fw.Close()
		}
	}
	if err != nil {
		events.Config.WatchError(err)
		w.startPoller(time.Second)
	} else {
		w.wg.Add(1)
		go w.watch(fw)
	}
	w.closeWhenDone()
	return w
}

func newWatcher(path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		debounce: debounce,
		throttle: newThrottle(debounce),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}
}

func (w *Watcher) closeWhenDone() {
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The loop exits after its current load completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != filepath.Base(w.path) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

func (w *Watcher) watch(fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if !w.send(Event{Kind: KindDictionaries, Err: err}) {
				return
			}
		case <-fire:
			fire = nil
			if !w.emit() {
				return
			}
		}
	}
}

type fingerprint struct {
	modTime time.Time
	size    int64
	exists  bool
}

func (f fingerprint) same(o fingerprint) bool {
	return f.exists == o.exists && f.size == o.size && f.modTime.Equal(o.modTime)
}

func (w *Watcher) stat() fingerprint {
	info, err := os.Stat(w.path)
	if err != nil {
		return fingerprint{}
	}
	return fingerprint{modTime: info.ModTime(), size: info.Size(), exists: true}
}

func (w *Watcher) startPoller(interval time.Duration) {
	w.wg.Add(1)
	go w.poll(interval)
}

func (w *Watcher) poll(interval time.Duration) {
	defer w.wg.Done()

	last := w.stat()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			current := w.stat()
			if current.same(last) {
				continue
			}
			last = current
			if !w.emit() {
				return
			}
		}
	}
}

func (w *Watcher) emit() bool {
	if !w.throttle.wait(w.ctx) {
		return false
	}
	res, err := dictfile.Load(w.path)
	return w.send(Event{Kind: KindDictionaries, Data: res, Err: err})
}

func (w *Watcher) send(evt Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- evt:
		return true
	}
}
