// Package cache holds the bounded in-memory caches injected into use cases.
package cache

import (
	"container/list"
	"image"
	"sync"

	"github.com/bnema/areashot/internal/application/port"
)

var _ port.Cache[string, image.Image] = (*LRU[string, image.Image])(nil)

// LRU is a fixed-capacity cache that drops the least recently used entry
// when full. Capture sessions keep decoded media frames in one, keyed by
// element id, so a video spanning several tiles is decoded once.
// Safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	index    map[K]*list.Element
	recency  *list.List // front is the most recently used
}

type lruItem[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU returns a cache holding at most capacity entries (minimum 1).
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	return &LRU[K, V]{
		capacity: max(capacity, 1),
		index:    make(map[K]*list.Element, max(capacity, 1)),
		recency:  list.New(),
	}
}

// Get implements port.Cache. A hit counts as a use.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.recency.MoveToFront(el)
	return el.Value.(*lruItem[K, V]).value, true
}

// Set implements port.Cache.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value.(*lruItem[K, V]).value = value
		c.recency.MoveToFront(el)
		return
	}
	for c.recency.Len() >= c.capacity {
		c.dropOldest()
	}
	c.index[key] = c.recency.PushFront(&lruItem[K, V]{key: key, value: value})
}

// Remove implements port.Cache.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		c.recency.Remove(el)
		delete(c.index, key)
	}
}

// Len implements port.Cache.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

// Clear implements port.Cache. The media overlay clears at the start of
// every capture so frames never leak between captures.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.index)
	c.recency.Init()
}

// dropOldest evicts the least recently used entry. Callers hold mu.
func (c *LRU[K, V]) dropOldest() {
	el := c.recency.Back()
	if el == nil {
		return
	}
	c.recency.Remove(el)
	delete(c.index, el.Value.(*lruItem[K, V]).key)
}
