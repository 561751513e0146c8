// Package watcher reports changes to individual files.
//
// Files are watched through their parent directory so that editors which
// save by renaming a temporary file over the original are still observed.
// Rapid changes to the same file are coalesced into one event.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("file is already being watched")
	ErrNotWatching     = errors.New("file is not being watched")
)

// Op is a set of file operations.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has reports whether op includes o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event is a change to a watched file.
type Event struct {
	// Path is the absolute path of the file.
	Path string

	// Op is the coalesced operation.
	Op Op

	// Timestamp is when the last underlying change was seen.
	Timestamp time.Time
}

// Default settings.
const (
	DefaultDebounce   = 100 * time.Millisecond
	DefaultBufferSize = 16
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported.
// Zero reports every change immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithBufferSize sets the capacity of the event channel.
func WithBufferSize(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.bufSize = n
		}
	}
}

// Watcher watches a set of files.
type Watcher struct {
	mu sync.Mutex

	fsw   *fsnotify.Watcher
	files map[string]bool
	dirs  map[string]int

	debounce time.Duration
	bufSize  int
	pending  map[string]Event

	events  chan Event
	errors  chan error
	closeCh chan struct{}
	wg      sync.WaitGroup
	closed  bool
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		debounce: DefaultDebounce,
		bufSize:  DefaultBufferSize,
		pending:  make(map[string]Event),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.events = make(chan Event, w.bufSize)
	w.errors = make(chan error, w.bufSize)

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch starts watching the file at path. The file need not exist yet, but
// its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[abs] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if _, err := os.Stat(dir); err != nil {
			return err
		}
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Unwatch stops watching the file at path.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.files[abs] {
		return ErrNotWatching
	}

	delete(w.files, abs)
	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// Files returns the watched files.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Run calls fn for every event until ctx is done or the watcher is closed.
// Errors from the underlying watcher end the run.
func (w *Watcher) Run(ctx context.Context, fn func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.events:
			if !ok {
				return ErrWatcherClosed
			}
			fn(ev)
		case err, ok := <-w.errors:
			if !ok {
				return ErrWatcherClosed
			}
			return err
		}
	}
}

// Close stops the watcher and closes its channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			ev, tracked := w.convert(fsEvent)
			if !tracked {
				continue
			}
			if w.debounce == 0 {
				w.send(ev)
				continue
			}
			w.queue(ev)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.flush()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// convert maps an fsnotify event to an Event for a watched file.
func (w *Watcher) convert(fsEvent fsnotify.Event) (Event, bool) {
	abs, err := filepath.Abs(fsEvent.Name)
	if err != nil {
		return Event{}, false
	}

	w.mu.Lock()
	tracked := w.files[abs]
	w.mu.Unlock()
	if !tracked {
		return Event{}, false
	}

	var op Op
	if fsEvent.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsEvent.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsEvent.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsEvent.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if op == 0 {
		return Event{}, false
	}
	return Event{Path: abs, Op: op, Timestamp: time.Now()}, true
}

// queue coalesces ev with any pending event for the same file:
// a remove wins, a create is kept, a write never overrides either.
func (w *Watcher) queue(ev Event) {
	existing, ok := w.pending[ev.Path]
	if !ok {
		w.pending[ev.Path] = ev
		return
	}

	switch {
	case ev.Op.Has(OpRemove):
		existing.Op = OpRemove
	case ev.Op.Has(OpCreate):
		existing.Op = OpCreate
	case existing.Op.Has(OpRemove) || existing.Op.Has(OpCreate):
	default:
		existing.Op = ev.Op
	}
	existing.Timestamp = ev.Timestamp
	w.pending[ev.Path] = existing
}

func (w *Watcher) flush() {
	for path, ev := range w.pending {
		w.send(ev)
		delete(w.pending, path)
	}
}

// send delivers ev, dropping it when the channel is full.
func (w *Watcher) send(ev Event) {
	select {
	case w.events <- ev:
	default:
	}
}
