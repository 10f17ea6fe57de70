// Package lru provides a fixed-capacity cache with least-recently-used
// eviction. Get and Set are O(1): a map provides lookup and a circular
// doubly-linked list with a sentinel head maintains recency order.
//
// The cache is not safe for concurrent use; it is intended for the
// single-threaded UI event loop.
package lru

import (
	"errors"
	"fmt"
)

// ErrBadCapacity is returned when constructing a cache with a
// non-positive capacity.
var ErrBadCapacity = errors.New("lru: capacity must be at least 1")

// node is one entry in the recency list. The list is circular: the
// sentinel's next is the most recently used node and its prev is the
// least recently used.
type node[K comparable, V any] struct {
	key   K
	value V
	prev  *node[K, V]
	next  *node[K, V]
}

// Cache is a fixed-capacity LRU cache from K to V.
type Cache[K comparable, V any] struct {
	capacity int
	entries  map[K]*node[K, V]
	head     *node[K, V] // sentinel
}

// New creates a cache holding at most capacity entries. Capacity must be
// at least 1.
func New[K comparable, V any](capacity int) (*Cache[K, V], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadCapacity, capacity)
	}

	head := &node[K, V]{}
	head.prev = head
	head.next = head

	return &Cache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*node[K, V], capacity),
		head:     head,
	}, nil
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Capacity returns the configured capacity.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

// Get returns the value for key. A hit marks the entry most recently
// used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	n, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.touch(n)
	return n.value, true
}

// Contains reports whether key is cached without affecting recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.entries[key]
	return ok
}

// Set inserts or overwrites the value for key and marks it most recently
// used. When the cache is at capacity and key is new, the least recently
// used entry is evicted first. Evicted values are simply dropped.
func (c *Cache[K, V]) Set(key K, value V) {
	if n, ok := c.entries[key]; ok {
		n.value = value
		c.touch(n)
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.pushFront(n)
}

// touch moves a resident node to the front of the recency list.
func (c *Cache[K, V]) touch(n *node[K, V]) {
	c.unlink(n)
	c.pushFront(n)
}

// evictOldest removes the entry adjacent to the sentinel's prev side.
func (c *Cache[K, V]) evictOldest() {
	oldest := c.head.prev
	if oldest == c.head {
		return
	}
	c.unlink(oldest)
	delete(c.entries, oldest.key)
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}

func (c *Cache[K, V]) pushFront(n *node[K, V]) {
	n.next = c.head.next
	n.prev = c.head
	c.head.next.prev = n
	c.head.next = n
}
