// Package watch delivers debounced rebuild requests when the links file or
// template directory changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher wraps fsnotify with path filtering and debouncing. Bursts of
// filesystem events (editors write several times per save) collapse into a
// single request.
type Watcher struct {
	fs       *fsnotify.Watcher
	requests chan struct{}
	interest []string
	debounce time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for the given paths. For a file path the parent
// directory is watched so rename-and-replace saves are seen; for a directory
// the directory itself is watched.
func New(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		requests: make(chan struct{}, 1),
		debounce: defaultDebounce,
	}

	watched := map[string]bool{}
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("resolve watch path %s: %w", path, err)
		}
		w.interest = append(w.interest, abs)

		dir := abs
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			dir = filepath.Dir(abs)
		}
		if watched[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		watched[dir] = true
	}
	return w, nil
}

// Requests returns the channel rebuild requests are delivered on.
func (w *Watcher) Requests() <-chan struct{} {
	return w.requests
}

// Run processes filesystem events until ctx is done. Call in a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.interesting(event.Name) && event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.trigger()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Watch errors are transient on most platforms; the next event
			// still arrives.
			_ = err
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) interesting(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	for _, path := range w.interest {
		if abs == path || strings.HasPrefix(abs, path+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.requests <- struct{}{}:
		default:
		}
	})
}
