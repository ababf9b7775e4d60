// Package watch evicts stale parse-cache entries when tracked files change
// on disk. The cache already revalidates by mtime and size on every lookup;
// the watcher keeps it from holding content for files that are being edited
// between requests.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Invalidator is the cache-side interface the watcher drives.
type Invalidator interface {
	Invalidate(path string)
}

// Watcher watches the directories of tracked files and invalidates cache
// entries for .go files that change. Directories are added lazily as files
// are tracked.
type Watcher struct {
	cache    Invalidator
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher

	mu      sync.Mutex
	tracked map[string]struct{} // watched directories
}

// NewWatcher creates a Watcher bound to the given cache.
func NewWatcher(cache Invalidator, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		cache:    cache,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		tracked:  make(map[string]struct{}),
	}, nil
}

// Track starts watching the directory containing path. Tracking the same
// directory twice is a no-op.
func (w *Watcher) Track(path string) {
	dir := filepath.Dir(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tracked[dir]; ok {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		w.logger.Warn("watch dir failed", "dir", dir, "err", err)
		return
	}
	w.tracked[dir] = struct{}{}
}

// Run is the event loop. It debounces rapid edits and invalidates the cache
// entry for each changed .go file. Blocks until ctx is cancelled or the
// fsnotify channels close.
func (w *Watcher) Run(ctx context.Context) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop() // don't fire until we have events

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".go") {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				pending[ev.Name] = struct{}{}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("fsnotify error", "err", err)

		case <-timer.C:
			for p := range pending {
				w.cache.Invalidate(p)
				w.logger.Debug("cache entry invalidated", "path", p)
			}
			pending = make(map[string]struct{})
		}
	}
}

// Close shuts down the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
