// Package toolcache provides a TTL result cache for expensive external lookups.
// Entries expire lazily at read time; the backing store is LRU-bounded so a
// high tool-call volume cannot grow the cache without limit.
package toolcache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTTL is how long an entry lives unless the caller overrides it
const DefaultTTL = 24 * time.Hour

// DefaultMaxEntries bounds the backing store when no explicit limit is configured
const DefaultMaxEntries = 4096

type entry[V any] struct {
	value  V
	expiry time.Time
}

// Cache is a TTL key-value cache safe for concurrent use. There is no
// background eviction: an expired entry is removed on the first read after its
// expiry and treated as absent.
type Cache[V any] struct {
	entries *lru.Cache[string, entry[V]]
	now     func() time.Time
}

// New creates a cache bounded to maxEntries (DefaultMaxEntries if <= 0)
func New[V any](maxEntries int) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	// lru.New only fails on a non-positive size
	entries, _ := lru.New[string, entry[V]](maxEntries)
	return &Cache[V]{
		entries: entries,
		now:     time.Now,
	}
}

// Get returns the cached value for key, or false if absent or expired
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	e, ok := c.entries.Get(key)
	if !ok {
		return zero, false
	}
	if !c.now().Before(e.expiry) {
		c.entries.Remove(key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with the given ttl. A zero ttl produces an entry
// that is already expired on the next read.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	c.entries.Add(key, entry[V]{
		value:  value,
		expiry: c.now().Add(ttl),
	})
}

// Clear removes all entries. Exposed for test teardown.
func (c *Cache[V]) Clear() {
	c.entries.Purge()
}

// Len returns the number of live-or-expired entries currently stored
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

// Key derives a deterministic cache key from an operation name and its
// parameters. Parameters are sorted so argument order never causes a miss for
// a logically identical lookup.
func Key(operation string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(operation)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf(":%s=%s", name, params[name]))
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// GetOrFill returns the cached value for the derived key, or invokes fill,
// caches its result for ttl, and returns it. A fill error is returned without
// caching so the next call retries.
func (c *Cache[V]) GetOrFill(operation string, params map[string]string, ttl time.Duration, fill func() (V, error)) (V, error) {
	key := Key(operation, params)
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err := fill()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, value, ttl)
	return value, nil
}
