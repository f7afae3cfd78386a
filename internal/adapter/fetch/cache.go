package fetch

import (
	"context"
	"sync"

	"github.com/tricountyrescue/rescue-dashboard/internal/observability"
)

// CachedSource wraps a Source with an in-memory LRU cache for layer
// documents. County boundaries change on the order of years while CSV logs
// change every refresh, so only FetchLayer results are cached.
type CachedSource struct {
	inner   Source
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a source.
func NewCachedSource(inner Source, maxEntries int, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// FetchCSV always delegates; donation logs are never cached.
func (c *CachedSource) FetchCSV(ctx context.Context, file string) (string, error) {
	return c.inner.FetchCSV(ctx, file)
}

func (c *CachedSource) FetchLayer(ctx context.Context, file string) ([]byte, error) {
	if doc, ok := c.cache.get(file); ok {
		c.metrics.LayerCache.WithLabelValues("hit").Inc()
		return doc, nil
	}
	c.metrics.LayerCache.WithLabelValues("miss").Inc()

	doc, err := c.inner.FetchLayer(ctx, file)
	if err != nil {
		return nil, err
	}
	c.cache.put(file, doc)
	return doc, nil
}

// lruCache is a simple thread-safe LRU cache for layer documents.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []byte
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
