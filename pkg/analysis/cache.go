package analysis

import (
	"io/fs"
	"sync"
	"time"
)

type cacheEntry struct {
	modTime time.Time
	size    int64
	content []byte
}

// Cache holds raw file content keyed by path, validated against the file's
// modification time and size. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns cached content for path if it still matches info.
func (c *Cache) Get(path string, info fs.FileInfo) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[path]
	if !ok || e.size != info.Size() || !e.modTime.Equal(info.ModTime()) {
		return nil, false
	}
	return e.content, true
}

// Put stores content for path.
func (c *Cache) Put(path string, info fs.FileInfo, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = cacheEntry{modTime: info.ModTime(), size: info.Size(), content: content}
}

// Invalidate drops the entry for path, if any.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
