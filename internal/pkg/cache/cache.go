// Package cache memoizes upstream responses in process.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a TTL cache. A nil *Cache is valid and never hits.
type Cache[V any] struct {
	store *ristretto.Cache[string, V]
	ttl   time.Duration
}

// New creates a cache holding up to maxItems entries for ttl each
func New[V any](maxItems int64, ttl time.Duration) (*Cache[V], error) {
	store, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems,
		BufferItems: 64,
		// cost counts entries, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cache[V]{store: store, ttl: ttl}, nil
}

func (c *Cache[V]) Get(key string) (V, bool) {
	if c == nil {
		var zero V
		return zero, false
	}
	return c.store.Get(key)
}

// Set stores value with cost 1. Ristretto admits entries asynchronously, so a
// Get right after Set may still miss.
func (c *Cache[V]) Set(key string, value V) {
	if c == nil {
		return
	}
	c.store.SetWithTTL(key, value, 1, c.ttl)
}

// Wait blocks until pending Sets are applied
func (c *Cache[V]) Wait() {
	if c == nil {
		return
	}
	c.store.Wait()
}

func (c *Cache[V]) Clear() {
	if c == nil {
		return
	}
	c.store.Clear()
}

func (c *Cache[V]) Close() {
	if c == nil {
		return
	}
	c.store.Close()
}

// Key joins parts into a cache key
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Hash returns the hex SHA-256 of the concatenated inputs, each length-prefixed
func Hash(inputs ...[]byte) string {
	h := sha256.New()
	for _, in := range inputs {
		fmt.Fprintf(h, "%d:", len(in))
		h.Write(in)
	}
	return hex.EncodeToString(h.Sum(nil))
}
