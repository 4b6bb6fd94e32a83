package cache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// ErrInvalidCapacity is returned by New for a capacity below one.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// Stats are cumulative counters since construction.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// LRU is a fixed-capacity map that evicts the least recently used entry
// when a new key would exceed the capacity. Both reads and writes count
// as use. Every method is one critical section, so it is safe for
// concurrent use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	items    *simplelru.LRU[K, V]
	capacity int
	stats    Stats
}

func New[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidCapacity, capacity)
	}
	items, err := simplelru.NewLRU[K, V](capacity, nil)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{items: items, capacity: capacity}, nil
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items.Get(key)
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

// Put stores value under key and returns the value it replaced, if any.
func (c *LRU[K, V]) Put(key K, value V) (prev V, replaced bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, replaced = c.items.Peek(key)
	c.add(key, value)
	return prev, replaced
}

// ComputeIfAbsent returns the cached value for key, or calls factory,
// stores its result and returns it. The factory runs under the cache lock
// so concurrent callers never construct the same key twice. A factory
// error is returned as is and nothing is stored.
func (c *LRU[K, V]) ComputeIfAbsent(key K, factory func(K) (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.items.Get(key); ok {
		c.stats.Hits++
		return v, nil
	}
	c.stats.Misses++

	v, err := factory(key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.add(key, v)
	return v, nil
}

func (c *LRU[K, V]) add(key K, value V) {
	if c.items.Add(key, value) {
		c.stats.Evictions++
	}
}

// Clear drops every entry. Counters are kept.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Purge()
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

func (c *LRU[K, V]) Capacity() int {
	return c.capacity
}

// Keys returns the keys from least to most recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Keys()
}

func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
