// Package watch monitors the features directory and reports batched
// changes to .feature files.
package watch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Handler receives one debounced batch of changed and removed paths.
type Handler func(changed, removed []string)

// Watcher follows a directory tree and invokes its handler whenever
// .feature files are written, created, renamed, or removed.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dir      string
	handler  Handler
	debounce *debouncer
	log      zerolog.Logger
	done     chan struct{}
}

// New builds a watcher rooted at dir. Call Start to begin delivering
// events and Close to tear down.
func New(dir string, handler Handler, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		dir:      dir,
		handler:  handler,
		debounce: newDebouncer(100),
		log:      log,
		done:     make(chan struct{}),
	}, nil
}

// Start registers every directory under the root and launches the
// event loop.
func (w *Watcher) Start() error {
	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != w.dir {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				w.log.Warn().Str("path", path).Err(err).Msg("cannot watch directory")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	go w.eventLoop()
	w.log.Info().Str("dir", w.dir).Msg("watching")
	return nil
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// New subdirectories join the watch set.
	if event.Has(fsnotify.Create) {
		if info, err := os.Lstat(path); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(path), ".") {
				if err := w.fsw.Add(path); err != nil {
					w.log.Warn().Str("path", path).Err(err).Msg("cannot watch directory")
				}
			}
			return
		}
	}

	if filepath.Ext(path) != ".feature" {
		return
	}

	w.debounce.add(path, event.Op)
	w.debounce.flush(func(changed, removed []string) {
		if len(changed) > 0 || len(removed) > 0 {
			w.handler(changed, removed)
		}
	})
}

// Close stops the event loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
