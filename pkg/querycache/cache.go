// Package querycache provides a generic key-addressed cache for remotely
// fetched data. Fetches for the same key are de-duplicated, never retried, and
// cached entries can be patched in place or invalidated so the next read goes
// back to the source.
package querycache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle state of a cached entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "idle"
	}
}

// Entry is a snapshot of a cached key.
type Entry[V any] struct {
	Data     V
	Status   Status
	Err      error
	Stale    bool // invalidated, a refetch has not completed yet
	Fetching bool // at least one fetch is in flight
}

type entry[V any] struct {
	Entry[V]

	// epoch increases on every Invalidate and SetData. A fetch that started
	// in an older epoch may have read the source before the change and its
	// result is discarded.
	epoch    uint64
	inflight int
}

// FetchFunc loads the value for a key from its source.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Cache is a thread-safe cache of values keyed by string.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]
	group   singleflight.Group
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]*entry[V]),
	}
}

// Get returns a snapshot of the entry for key.
func (c *Cache[V]) Get(key string) (Entry[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return Entry[V]{}, false
	}
	return e.Entry, true
}

// Data returns the cached value for key, or the zero value if absent.
func (c *Cache[V]) Data(key string) V {
	e, _ := c.Get(key)
	return e.Data
}

// lookup returns the entry for key, creating it when missing. c.mu must be held.
func (c *Cache[V]) lookup(key string) (*entry[V], bool) {
	e, ok := c.entries[key]
	if !ok {
		e = &entry[V]{}
		c.entries[key] = e
	}
	return e, ok
}

// SetData replaces the value for key with the result of fn. fn receives the
// current value and whether one existed. The entry is marked successful and
// fresh, and fetches already in flight for key can no longer overwrite it.
func (c *Cache[V]) SetData(key string, fn func(old V, ok bool) V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lookup(key)

	e.Data = fn(e.Data, ok && e.Status == StatusSuccess)
	e.Status = StatusSuccess
	e.Err = nil
	e.Stale = false
	c.bump(key, e)
}

// Invalidate marks the entry for key as stale. Results of fetches already in
// flight are discarded, so the next Fetch reads the source again. It reports
// whether the key is known to the cache, in which case the caller should issue
// a refetch.
func (c *Cache[V]) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	e.Stale = true
	c.bump(key, e)
	return true
}

// bump starts a new epoch for key. c.mu must be held.
func (c *Cache[V]) bump(key string, e *entry[V]) {
	e.epoch++
	c.group.Forget(key)
}

// Fetch loads key with fn. Concurrent calls for the same key within one epoch
// share a single invocation of fn. Failures are recorded on the entry and
// returned; there is no retry. A result from an epoch that has since been
// invalidated is returned to its callers but not stored.
func (c *Cache[V]) Fetch(ctx context.Context, key string, fn FetchFunc[V]) (V, error) {
	v, err, _ := c.group.Do(key, func() (any, error) {
		epoch := c.begin(key)
		data, err := fn(ctx)
		c.complete(key, epoch, data, err)
		return data, err
	})

	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

func (c *Cache[V]) begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, _ := c.lookup(key)
	e.inflight++
	e.Fetching = true
	if e.Status != StatusSuccess {
		e.Status = StatusLoading
	}
	return e.epoch
}

func (c *Cache[V]) complete(key string, epoch uint64, data V, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, _ := c.lookup(key)
	e.inflight--
	e.Fetching = e.inflight > 0

	if epoch != e.epoch {
		return
	}

	if err != nil {
		e.Status = StatusError
		e.Err = err
		return
	}

	e.Data = data
	e.Status = StatusSuccess
	e.Err = nil
	e.Stale = false
}
