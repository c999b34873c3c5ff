// Package watcher implements driven.VocabularyWatcher using
// github.com/fsnotify/fsnotify.
//
// The parent directory of the vocabulary file is watched rather than the
// file itself, since most editors save by writing a temp file and renaming
// it over the original. Bursts of events are collapsed into one callback.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/foodtrend/internal/core/ports/driven"
	"github.com/custodia-labs/foodtrend/internal/logger"
)

// Verify interface compliance.
var _ driven.VocabularyWatcher = (*Watcher)(nil)

// DefaultDebounce is the quiet period after the last event before
// onChange fires.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a single file for changes.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	done     chan struct{}

	mu       sync.Mutex
	timer    *time.Timer
	watching bool
	stopped  bool
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fw:       fw,
		debounce: debounce,
		done:     make(chan struct{}),
	}, nil
}

// Watch starts monitoring path. Only one path may be watched per Watcher.
func (w *Watcher) Watch(path string, onChange func()) error {
	if onChange == nil {
		return errors.New("watch: nil callback")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("watch: watcher stopped")
	}
	if w.watching {
		return errors.New("watch: already watching a file")
	}
	if err := w.fw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}
	w.watching = true

	go w.loop(absPath, onChange)
	return nil
}

func (w *Watcher) loop(target string, onChange func()) {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule(onChange)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("vocabulary watcher: %v", err)

		case <-w.done:
			return
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule(onChange func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			onChange()
		}
	})
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.fw.Close()
}
