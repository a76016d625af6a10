package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

const (
	DefaultCapacity = 500
	DefaultTTL      = time.Minute
)

// Cache is a fixed-capacity in-memory cache with per-entry TTL.
//
// Eviction order is insertion/update order: Get does not refresh an
// entry's recency, so a hot key that is only ever read still ages out
// on schedule. Construct one instance at process start and share it;
// all methods are safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = oldest insertion

	now func() time.Time
}

type entry struct {
	key       string
	value     interface{}
	expiresAt time.Time
}

// New builds a Cache. Non-positive capacity or ttl fall back to the
// package defaults.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the value stored under key. An entry past its TTL is a
// miss and is purged on the way out.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	ent := elem.Value.(*entry)
	if !c.now().Before(ent.expiresAt) {
		c.removeLocked(elem)
		return nil, false
	}
	return ent.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetTTL(key, value, c.ttl)
}

// SetTTL stores value under key with an explicit TTL. Updating an
// existing key resets its expiry and moves it to the newest slot.
func (c *Cache) SetTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = value
		ent.expiresAt = c.now().Add(ttl)
		c.order.MoveToBack(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		c.evictOneLocked()
	}
	elem := c.order.PushBack(&entry{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(ttl),
	})
	c.entries[key] = elem
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		c.removeLocked(elem)
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// Has reports whether key holds a live (unexpired) entry.
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Len is the number of stored entries, expired ones included until
// they are purged.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// DeleteFunc removes every entry whose key matches pred and returns
// how many were dropped. Used to invalidate whole key families after
// an out-of-band write.
func (c *Cache) DeleteFunc(pred func(key string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if pred(elem.Value.(*entry).key) {
			c.removeLocked(elem)
			removed++
		}
		elem = next
	}
	return removed
}

// DeletePrefix removes every entry whose key starts with prefix.
func (c *Cache) DeletePrefix(prefix string) int {
	return c.DeleteFunc(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// evictOneLocked frees one slot: prefer any already-expired entry,
// otherwise drop the oldest insertion.
func (c *Cache) evictOneLocked() {
	now := c.now()
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		if !now.Before(elem.Value.(*entry).expiresAt) {
			c.removeLocked(elem)
			return
		}
	}
	if front := c.order.Front(); front != nil {
		c.removeLocked(front)
	}
}

func (c *Cache) removeLocked(elem *list.Element) {
	delete(c.entries, elem.Value.(*entry).key)
	c.order.Remove(elem)
}
