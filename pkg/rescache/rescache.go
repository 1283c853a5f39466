// Package rescache is an in-memory response cache for the HTTP server.
// Identical scheduling requests within the TTL are answered from cache
// instead of recomputing the 24-hour scan.
package rescache

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/maypok86/otter/v2"
)

type entry struct {
	expiresAt time.Time
	data      []byte
}

// Cache stores serialized responses keyed by endpoint and request body.
type Cache struct {
	cache  otter.Cache[string, entry]
	logger *slog.Logger
	ttl    time.Duration
}

// New creates a cache with the given TTL.
func New(ttl time.Duration, logger *slog.Logger) *Cache {
	cache := otter.Must(&otter.Options[string, entry]{
		MaximumSize:      10_000,
		InitialCapacity:  1_000,
		ExpiryCalculator: otter.ExpiryWriting[string, entry](ttl),
	})

	return &Cache{
		cache:  *cache,
		logger: logger,
		ttl:    ttl,
	}
}

func cacheKey(endpoint string, requestBody []byte) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write(requestBody)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached response for an endpoint and request body.
func (c *Cache) Get(endpoint string, requestBody []byte) ([]byte, bool) {
	key := cacheKey(endpoint, requestBody)

	e, found := c.cache.GetIfPresent(key)
	if !found {
		c.logger.Debug("cache miss", "endpoint", endpoint, "reason", "not_found")
		return nil, false
	}

	// Otter expires on write TTL already, but guard against clock skew.
	if time.Now().After(e.expiresAt) {
		c.logger.Debug("cache miss", "endpoint", endpoint, "reason", "expired")
		c.cache.Invalidate(key)
		return nil, false
	}

	c.logger.Debug("cache hit", "endpoint", endpoint)
	return e.data, true
}

// Set stores a response.
func (c *Cache) Set(endpoint string, requestBody, data []byte) {
	key := cacheKey(endpoint, requestBody)
	c.cache.Set(key, entry{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.logger.Debug("cache set", "endpoint", endpoint, "size", len(data))
}

// Len reports the approximate number of cached responses.
func (c *Cache) Len() int {
	return int(c.cache.EstimatedSize())
}
