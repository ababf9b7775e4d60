package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recordingCache struct {
	mu    sync.Mutex
	paths []string
}

func (r *recordingCache) Invalidate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recordingCache) invalidated() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatcherInvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cache := &recordingCache{}
	w, err := NewWatcher(cache, 20*time.Millisecond, discardLogger())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	w.Track(path)
	w.Track(path) // second track of the same dir is a no-op

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	if err := os.WriteFile(path, []byte("package main // edited\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, p := range cache.invalidated() {
			if p == path {
				cancel()
				<-done
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("cache was never invalidated for %s (got %v)", path, cache.invalidated())
}

func TestWatcherIgnoresNonGoFiles(t *testing.T) {
	dir := t.TempDir()
	goFile := filepath.Join(dir, "main.go")
	if err := os.WriteFile(goFile, []byte("package main\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cache := &recordingCache{}
	w, err := NewWatcher(cache, 20*time.Millisecond, discardLogger())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()
	w.Track(goFile)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write txt: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	if got := cache.invalidated(); len(got) != 0 {
		t.Errorf("expected no invalidations, got %v", got)
	}
}
