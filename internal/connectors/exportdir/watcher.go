package exportdir

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-its/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is reported.
const DefaultSettle = 500 * time.Millisecond

// ErrClosed is returned when watching with a closed watcher.
var ErrClosed = errors.New("export watcher is closed")

// ChangeType describes why an export is reported.
type ChangeType string

const (
	// ChangeCreated is reported for a new export file.
	ChangeCreated ChangeType = "created"
	// ChangeUpdated is reported when an existing export is rewritten.
	ChangeUpdated ChangeType = "updated"
)

// Change is an export file that is ready to import.
type Change struct {
	Path string
	Type ChangeType
}

// Watcher reports XML exports dropped into a directory.
type Watcher struct {
	root   string
	settle time.Duration

	mu      sync.Mutex
	closed  bool
	watcher *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period before a change is reported.
// Bursts of writes to one file are reported once.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// New creates a watcher for the export directory at root.
func New(root string, opts ...Option) *Watcher {
	w := &Watcher{root: root, settle: DefaultSettle}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Existing lists the exports already present in the directory, sorted by name.
func (w *Watcher) Existing() ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isExport(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(w.root, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Watch starts watching the directory. The channel is closed when ctx is
// cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", w.root)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}
	if w.watcher != nil {
		return nil, errors.New("export watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.root, err)
	}
	w.watcher = fsw

	changes := make(chan Change)
	go w.run(ctx, fsw, changes)

	logger.Debug("Watching %s for exports", w.root)
	return changes, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}

type pendingChange struct {
	change Change
	due    time.Time
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- Change) {
	defer close(changes)
	defer fsw.Close()

	pending := make(map[string]pendingChange)
	timer := time.NewTimer(w.settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			change := w.handleFsEvent(event)
			if change == nil {
				continue
			}
			// A file created and then written is still new.
			if prev, ok := pending[change.Path]; ok && prev.change.Type == ChangeCreated {
				change.Type = ChangeCreated
			}
			pending[change.Path] = pendingChange{change: *change, due: time.Now().Add(w.settle)}
			timer.Reset(w.settle)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.root, err)

		case <-timer.C:
			ready, wait := settled(pending, time.Now())
			for _, change := range ready {
				select {
				case changes <- change:
				case <-ctx.Done():
					return
				}
			}
			if wait > 0 {
				timer.Reset(wait)
			}
		}
	}
}

// settled removes due changes from pending and returns them oldest first,
// along with the wait until the next one is due.
func settled(pending map[string]pendingChange, now time.Time) ([]Change, time.Duration) {
	var due []pendingChange
	var wait time.Duration

	for path, p := range pending {
		if remaining := p.due.Sub(now); remaining > 0 {
			if wait == 0 || remaining < wait {
				wait = remaining
			}
			continue
		}
		due = append(due, p)
		delete(pending, path)
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].due.Equal(due[j].due) {
			return due[i].due.Before(due[j].due)
		}
		return due[i].change.Path < due[j].change.Path
	})

	ready := make([]Change, len(due))
	for i := range due {
		ready[i] = due[i].change
	}
	return ready, wait
}

// handleFsEvent converts a filesystem event into a change, or nil when
// the event does not concern an importable export.
func (w *Watcher) handleFsEvent(event fsnotify.Event) *Change {
	if !isExport(filepath.Base(event.Name)) {
		return nil
	}

	var changeType ChangeType
	switch {
	case event.Has(fsnotify.Create):
		changeType = ChangeCreated
	case event.Has(fsnotify.Write):
		changeType = ChangeUpdated
	default:
		// Removals leave nothing to import
		return nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return nil
	}

	return &Change{Path: event.Name, Type: changeType}
}

// isExport reports whether a file name looks like a visible XML export.
func isExport(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".xml")
}
