package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mensura/mensura/errors"
	"github.com/mensura/mensura/logger"
)

// Watcher watches catalog files and triggers a callback after changes,
// debounced so an editor's save burst causes one regeneration.
type Watcher struct {
	paths          []string
	watcher        *fsnotify.Watcher
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// ChangeCallback runs after the debounce period once a watched file has
// been written, created or renamed.
type ChangeCallback func() error

// NewWatcher creates a watcher over the given catalog files.
func NewWatcher(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("nothing to watch: no catalog paths given")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch catalog file %s", p)
		}
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		paths:          paths,
		watcher:        fsw,
		debouncePeriod: debounce,
	}, nil
}

// OnChange registers a callback to run after a debounced change.
func (w *Watcher) OnChange(cb ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Editors save via write, create or rename depending on their
			// atomic-save strategy.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Logger.Infow("catalog change detected",
				"file", event.Name,
				"op", event.Op.String())
			w.scheduleCallback()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Logger.Warnw("catalog watcher error", "error", err)
		}
	}
}

// scheduleCallback debounces rapid file changes.
func (w *Watcher) scheduleCallback() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

func (w *Watcher) fire() {
	w.mu.RLock()
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		if err := cb(); err != nil {
			// Keep watching; a broken edit should not kill the loop.
			logger.Logger.Errorw("catalog change callback failed", "error", err)
		}
	}
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
