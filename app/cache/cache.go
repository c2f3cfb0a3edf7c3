package cache

import (
	"fmt"
	"log"
	"sync"
)

// Cache is an LRU byte cache for published preview payloads, keyed by the
// derived companion file path. Each entry remembers the content hash of its
// source file; a lookup with a different hash is a miss and evicts the stale
// entry, so a changed source invalidates its cached preview.
type Cache struct {
	mu          sync.RWMutex
	maxSize     int64
	currentSize int64
	entries     map[string]*entry
	head, tail  *entry // sentinels, most recent after head
	logger      Logger
}

// Logger is the minimal logging interface the cache reports through.
// Matches the app's Log(level, message) method.
type Logger interface {
	Log(level, message string)
}

type entry struct {
	key        string
	sourcePath string
	sourceHash string
	data       []byte
	prev, next *entry
}

// NewCache creates a cache bounded to maxSize bytes of payload data.
func NewCache(maxSize int64) *Cache {
	head := &entry{}
	tail := &entry{}
	head.next = tail
	tail.prev = head

	return &Cache{
		maxSize: maxSize,
		entries: make(map[string]*entry),
		head:    head,
		tail:    tail,
	}
}

// SetLogger sets the logger used for cache diagnostics
func (c *Cache) SetLogger(logger Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
}

// Get returns the cached payload for key if present and still valid for
// sourceHash. A hash mismatch removes the stale entry and reports a miss.
func (c *Cache) Get(key, sourceHash string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.logf("debug", "[CACHE_MISS] Key: %s", key)
		return nil, false
	}
	if e.sourceHash != sourceHash {
		c.logf("debug", "[CACHE_STALE] Key: %s, source changed", key)
		c.remove(e)
		return nil, false
	}

	c.moveToFront(e)
	c.logf("debug", "[CACHE_HIT] Key: %s, Size: %d bytes", key, len(e.data))
	return e.data, true
}

// Store caches a payload under key, evicting least recently used entries
// until it fits. Payloads larger than the whole cache are rejected.
func (c *Cache) Store(key, sourcePath, sourceHash string, data []byte) {
	size := int64(len(data))

	c.mu.Lock()
	defer c.mu.Unlock()

	if size > c.maxSize {
		log.Printf("[CACHE_REJECT] Entry too large: %d bytes > %d cache limit", size, c.maxSize)
		return
	}

	if old, ok := c.entries[key]; ok {
		c.remove(old)
	}

	for c.currentSize+size > c.maxSize && c.tail.prev != c.head {
		evicted := c.tail.prev
		c.logf("debug", "[CACHE_EVICT] Key: %s, Size: %d bytes", evicted.key, len(evicted.data))
		c.remove(evicted)
	}

	e := &entry{key: key, sourcePath: sourcePath, sourceHash: sourceHash, data: data}
	c.entries[key] = e
	c.insertAfterHead(e)
	c.currentSize += size
	c.logf("debug", "[CACHE_STORE] Key: %s, Size: %d bytes, Total: %d/%d bytes",
		key, size, c.currentSize, c.maxSize)
}

// InvalidateSource removes every entry derived from sourcePath.
func (c *Cache) InvalidateSource(sourcePath string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.sourcePath == sourcePath {
			c.remove(e)
		}
	}
}

// Clear removes all entries
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.currentSize = 0
}

// Resize updates the byte budget, evicting as needed to honour it.
func (c *Cache) Resize(maxSize int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.maxSize = maxSize
	for c.currentSize > c.maxSize && c.tail.prev != c.head {
		c.remove(c.tail.prev)
	}
}

// Stats describes the current cache occupancy
type Stats struct {
	TotalSize    int64
	MaxSize      int64
	UsagePercent float64
	TotalEntries int
}

// GetCacheStats returns the current cache statistics
func (c *Cache) GetCacheStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	usage := 0.0
	if c.maxSize > 0 {
		usage = float64(c.currentSize) / float64(c.maxSize) * 100
	}
	return Stats{
		TotalSize:    c.currentSize,
		MaxSize:      c.maxSize,
		UsagePercent: usage,
		TotalEntries: len(c.entries),
	}
}

func (c *Cache) insertAfterHead(e *entry) {
	e.next = c.head.next
	e.prev = c.head
	c.head.next.prev = e
	c.head.next = e
}

func (c *Cache) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.insertAfterHead(e)
}

func (c *Cache) remove(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.entries, e.key)
	c.currentSize -= int64(len(e.data))
}

func (c *Cache) logf(level, format string, args ...any) {
	if c.logger != nil {
		c.logger.Log(level, fmt.Sprintf(format, args...))
	}
}
