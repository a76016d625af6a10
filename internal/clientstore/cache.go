package clientstore

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"
)

// DefaultFreshness is how long a cached read stays usable.
const DefaultFreshness = 10 * time.Minute

// cachePrefix namespaces cached reads away from cart/order keys.
const cachePrefix = "aswaq-cache-v1"

type envelope struct {
	TS    int64           `json:"ts"`
	Value json.RawMessage `json:"value"`
}

// Cache is a best-effort read cache over a Store. Entries are stored
// as {ts, value} and judged stale lazily on read; stale entries are
// not deleted. Every failure mode (store down, bad payload, quota)
// degrades to a miss on read and a silent drop on write — callers
// must never see an error from this tier.
type Cache struct {
	store     Store
	freshness time.Duration
	logger    *log.Logger

	now func() time.Time
}

// NewCache builds a Cache. Non-positive freshness falls back to
// DefaultFreshness; a nil logger discards.
func NewCache(store Store, freshness time.Duration, logger *log.Logger) *Cache {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cache{store: store, freshness: freshness, logger: logger, now: time.Now}
}

// Read unmarshals the cached value for key into out and reports
// whether a fresh entry was found.
func (c *Cache) Read(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.store.Get(ctx, cachePrefix+":"+key)
	if err != nil {
		return false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Printf("clientstore: bad cache envelope key=%s: %v", key, err)
		return false
	}
	if env.TS <= 0 {
		return false
	}
	age := c.now().Sub(time.UnixMilli(env.TS))
	if age >= c.freshness {
		return false
	}
	if err := json.Unmarshal(env.Value, out); err != nil {
		c.logger.Printf("clientstore: bad cache value key=%s: %v", key, err)
		return false
	}
	return true
}

// Write stores v under key with the current timestamp. Failures are
// logged and swallowed.
func (c *Cache) Write(ctx context.Context, key string, v interface{}) {
	value, err := json.Marshal(v)
	if err != nil {
		c.logger.Printf("clientstore: marshal cache value key=%s: %v", key, err)
		return
	}
	raw, err := json.Marshal(envelope{TS: c.now().UnixMilli(), Value: value})
	if err != nil {
		c.logger.Printf("clientstore: marshal cache envelope key=%s: %v", key, err)
		return
	}
	if err := c.store.Set(ctx, cachePrefix+":"+key, raw); err != nil {
		c.logger.Printf("clientstore: write cache key=%s: %v", key, err)
	}
}
