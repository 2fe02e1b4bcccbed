package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debouncer batches rapid-fire events per path so one save does not
// trigger a handler call per write syscall.
type debouncer struct {
	mu       sync.Mutex
	pending  map[string]fsnotify.Op
	interval time.Duration
	timer    *time.Timer
}

func newDebouncer(intervalMs int) *debouncer {
	return &debouncer{
		pending:  make(map[string]fsnotify.Op),
		interval: time.Duration(intervalMs) * time.Millisecond,
	}
}

// add records an event, combining it with any pending ops for the path.
func (d *debouncer) add(path string, op fsnotify.Op) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[path] |= op
}

// flush schedules callback to run once the interval passes without
// another flush. Pending paths are partitioned into changed and removed;
// a path both written and removed counts as removed.
func (d *debouncer) flush(callback func(changed, removed []string)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		var changed, removed []string
		for path, op := range d.pending {
			if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
				removed = append(removed, path)
			} else if op.Has(fsnotify.Write) || op.Has(fsnotify.Create) {
				changed = append(changed, path)
			}
		}
		d.pending = make(map[string]fsnotify.Op)
		d.mu.Unlock()

		if len(changed) > 0 || len(removed) > 0 {
			callback(changed, removed)
		}
	})
}
