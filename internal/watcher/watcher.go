// Package watcher re-runs extraction when project source files change.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last file event before the
// callback fires.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a project root recursively and fires a callback with the
// batch of changed source files once events settle.
type Watcher struct {
	watcher     *fsnotify.Watcher
	root        string
	extension   string
	debounce    time.Duration
	callback    func(files []string)
	accumulated map[string]bool
	mu          sync.Mutex
	timer       *time.Timer
	timerMu     sync.Mutex
}

// New creates a watcher over root for files with the given extension
// (e.g. ".py"). debounce <= 0 applies DefaultDebounce.
func New(root, extension string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:     fsWatcher,
		root:        root,
		extension:   extension,
		debounce:    debounce,
		accumulated: make(map[string]bool),
	}

	if err := w.addDirectoriesRecursively(root); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return w, nil
}

// Run watches until the context is cancelled, invoking callback with each
// settled batch of changed files. Blocks.
func (w *Watcher) Run(ctx context.Context, callback func(files []string)) error {
	w.callback = callback
	defer w.watcher.Close()

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			// New directories need to be watched too.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}

			if filepath.Ext(event.Name) != w.extension {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			w.mu.Lock()
			w.accumulated[event.Name] = true
			w.mu.Unlock()

			w.resetTimer(fire)

		case <-fire:
			w.flush()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// flush fires the callback with the accumulated batch, if any.
func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.accumulated) == 0 {
		w.mu.Unlock()
		return
	}
	files := make([]string, 0, len(w.accumulated))
	for file := range w.accumulated {
		files = append(files, file)
	}
	w.accumulated = make(map[string]bool)
	w.mu.Unlock()

	if w.callback != nil {
		w.callback(files)
	}
}

func (w *Watcher) resetTimer(fire chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) addDirectoriesRecursively(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		// Skip hidden directories and bytecode caches.
		name := filepath.Base(path)
		if path != dir && (name == "__pycache__" || (len(name) > 1 && name[0] == '.')) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
