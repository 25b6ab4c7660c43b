package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/singleflight"
)

// Policy controls how long a stored value stays valid. Zero MaxAge keeps the value
// until the cache is cleared.
type Policy struct {
	MaxAge time.Duration
}

// Forever is the policy for values that never expire on their own
var Forever = Policy{}

// MaxAge returns a policy that expires values d after they were stored
func MaxAge(d time.Duration) Policy {
	return Policy{MaxAge: d}
}

type entry struct {
	value    any
	storedAt time.Time
	maxAge   time.Duration
}

func (e entry) expired(now time.Time, maxAge time.Duration) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(e.storedAt) >= maxAge
}

// Cache is a process local memo of remote lookups. Concurrent misses on the same key
// share a single fetch.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
}

// Option is a functional option for Cache
type Option func(*Cache)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty cache
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key joins key parts into a single cache key
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

func (c *Cache) load(key string, policy Policy) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || e.expired(c.now(), policy.MaxAge) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, value any, policy Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:    value,
		storedAt: c.now(),
		maxAge:   policy.MaxAge,
	}
}

// Do returns the value stored under key if it is still valid under policy. Otherwise
// it calls fetch, stores the result and returns it. Errors are returned as-is and never
// stored. Concurrent misses on one key share a single fetch, which therefore runs on a
// context detached from the first caller's cancellation; context values are kept.
func Do[T any](ctx context.Context, c *Cache, key string, policy Policy, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := c.load(key, policy); ok {
		typed, ok := v.(T)
		if !ok {
			return zero, goerr.New("cached value has unexpected type", goerr.V("key", key))
		}
		return typed, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have stored the value while we waited for the group
		if v, ok := c.load(key, policy); ok {
			return v, nil
		}

		result, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, result, policy)
		return result, nil
	})
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, goerr.New("fetched value has unexpected type", goerr.V("key", key))
	}
	return typed, nil
}

// Prune removes entries whose own max age has elapsed and returns how many were removed
func (c *Cache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if e.expired(now, e.maxAge) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, expired ones included
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
