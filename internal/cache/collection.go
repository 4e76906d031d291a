// Package cache provides the per-resource list cache the services use to
// avoid refetching a collection on rapid navigation, and to reconcile the
// cached collection after create, update, and delete.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is the staleness threshold after which a cached collection is
// refetched.
const DefaultTTL = 30 * time.Second

// Collection caches the last successfully fetched list of a resource.
// Mutations reconcile the cached slice in place; a failed remote operation
// must simply not call any mutator, leaving the cache untouched.
type Collection[T any] struct {
	mu        sync.Mutex
	items     []T
	fetchedAt time.Time
	ttl       time.Duration
	id        func(T) uuid.UUID
	now       func() time.Time
}

// NewCollection creates a cache with the given staleness threshold and
// identifier accessor. A non-positive ttl falls back to DefaultTTL.
func NewCollection[T any](ttl time.Duration, id func(T) uuid.UUID) *Collection[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Collection[T]{ttl: ttl, id: id, now: time.Now}
}

// Get returns a copy of the cached collection and whether it is still fresh.
// The copy keeps callers from mutating the cache's backing array.
func (c *Collection[T]) Get() ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, true
}

// Set stores a freshly fetched collection and resets the staleness clock.
func (c *Collection[T]) Set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, len(items))
	copy(c.items, items)
	c.fetchedAt = c.now()
}

// Invalidate drops the cached collection, forcing the next Get to miss.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.fetchedAt = time.Time{}
}

// ReplaceOrAppend replaces the cached element with the same identifier,
// preserving its position and the order of every other element. When no
// element matches (stale cache), the item is appended instead of dropped.
func (c *Collection[T]) ReplaceOrAppend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		return
	}
	want := c.id(item)
	for i := range c.items {
		if c.id(c.items[i]) == want {
			c.items[i] = item
			return
		}
	}
	c.items = append(c.items, item)
}

// Remove deletes the cached element with the given identifier, preserving the
// order of the rest. Removing an absent identifier is a no-op.
func (c *Collection[T]) Remove(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}
