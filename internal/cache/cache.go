package cache

import (
	"sync"
	"time"
)

// Key names one cached collection. Keys are independent: invalidating one
// never touches another.
type Key string

const (
	KeyDrafts        Key = "drafts"
	KeyIgnoredEmails Key = "emails.ignored"
	KeyIgnorePhrases Key = "preferences.ignores"
	KeySignoff       Key = "preferences.signoff"
)

type entry struct {
	data      any
	fetchedAt time.Time
	stale     bool
}

// Cache is a keyed store for collections fetched from the backend. Reads
// never invalidate; only successful mutations (or an explicit refresh) mark
// an entry stale, forcing the next read to re-fetch. Guarded by a mutex
// because bubbletea commands run in their own goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
}

func New() *Cache {
	return &Cache{entries: make(map[Key]entry)}
}

// Get returns the cached data for key. ok is false when the key has never
// been put or has been invalidated since.
func (c *Cache) Get(key Key) (data any, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, present := c.entries[key]
	if !present || e.stale {
		return nil, false
	}
	return e.data, true
}

// Put stores freshly fetched data for key and clears any stale mark.
func (c *Cache) Put(key Key, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, fetchedAt: time.Now()}
}

// Invalidate marks key stale so the next Get misses. Unknown keys are a
// no-op.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, present := c.entries[key]
	if !present {
		return
	}
	e.stale = true
	c.entries[key] = e
}

// FetchedAt returns when the entry was last stored, zero if never.
func (c *Cache) FetchedAt(key Key) time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key].fetchedAt
}

// Lookup is a typed convenience over Get. A cached value of the wrong type
// counts as a miss.
func Lookup[T any](c *Cache, key Key) (T, bool) {
	var zero T
	data, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := data.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
