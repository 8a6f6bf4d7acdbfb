// Package memstore provides generic, thread-safe, insertion-ordered
// in-memory collections and monotonic ID allocation for simulator state.
package memstore

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

// Collection is a generic, thread-safe, in-memory collection of T keyed by K.
// Listing is deterministic: items come back in insertion order.
type Collection[K comparable, T any] struct {
	mu    sync.RWMutex
	items map[K]T
	order []K
}

// NewCollection creates an empty Collection.
func NewCollection[K comparable, T any]() *Collection[K, T] {
	return &Collection[K, T]{
		items: make(map[K]T),
		order: make([]K, 0),
	}
}

// Set stores an item under the given key. An existing key is overwritten but
// keeps its position in the insertion order.
func (c *Collection[K, T]) Set(key K, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists {
		c.order = append(c.order, key)
	}
	c.items[key] = item
}

// Get retrieves an item by key.
func (c *Collection[K, T]) Get(key K) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[key]
	return item, ok
}

// Delete removes an item by key. Reports whether the item existed.
func (c *Collection[K, T]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[key]; !exists {
		return false
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns all items in insertion order.
func (c *Collection[K, T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]T, 0, len(c.order))
	for _, k := range c.order {
		result = append(result, c.items[k])
	}
	return result
}

// Keys returns all keys in insertion order.
func (c *Collection[K, T]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]K, len(c.order))
	copy(out, c.order)
	return out
}

// Filter returns items matching the predicate, in insertion order.
func (c *Collection[K, T]) Filter(predicate func(key K, item T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]T, 0)
	for _, k := range c.order {
		if predicate(k, c.items[k]) {
			result = append(result, c.items[k])
		}
	}
	return result
}

// Find returns the first item matching the predicate in insertion order.
func (c *Collection[K, T]) Find(predicate func(key K, item T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, k := range c.order {
		if predicate(k, c.items[k]) {
			return c.items[k], true
		}
	}
	var zero T
	return zero, false
}

// Count returns the number of items.
func (c *Collection[K, T]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Reset clears all items.
func (c *Collection[K, T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]T)
	c.order = make([]K, 0)
}

// Snapshot returns all items as a JSON-serializable map.
func (c *Collection[K, T]) Snapshot() map[K]T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make(map[K]T, len(c.items))
	for k, v := range c.items {
		snapshot[k] = v
	}
	return snapshot
}

// LoadSnapshot replaces all items from a map. Existing items are cleared.
// The less function orders the keys so listing stays deterministic; a nil
// less leaves the order unspecified.
func (c *Collection[K, T]) LoadSnapshot(snapshot map[K]T, less func(a, b K) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]T, len(snapshot))
	c.order = make([]K, 0, len(snapshot))
	for k, v := range snapshot {
		c.items[k] = v
		c.order = append(c.order, k)
	}
	if less != nil {
		sortKeys(c.order, less)
	}
}

// sortKeys is an insertion sort; snapshots are small.
func sortKeys[K comparable](keys []K, less func(a, b K) bool) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && less(keys[j], keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

// MarshalJSON serializes the collection as its items map.
func (c *Collection[K, T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}

// Sequence allocates monotonically increasing int64 identifiers.
type Sequence struct {
	n atomic.Int64
}

// NewSequence creates a Sequence whose first Next() returns start.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.n.Store(start - 1)
	return s
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}

// Bump raises the sequence so the next identifier is strictly greater than
// seen. Used when seed data carries explicit IDs.
func (s *Sequence) Bump(seen int64) {
	for {
		cur := s.n.Load()
		if cur >= seen {
			return
		}
		if s.n.CompareAndSwap(cur, seen) {
			return
		}
	}
}

// Current returns the last issued identifier.
func (s *Sequence) Current() int64 {
	return s.n.Load()
}

// Reset rewinds the sequence so the next identifier is start.
func (s *Sequence) Reset(start int64) {
	s.n.Store(start - 1)
}
