package resolver

import (
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a resolution result is trusted before a
// fresh lookup is required.
const DefaultCacheTTL = time.Hour

// Cache holds time-bounded resolution records keyed by normalized identity.
// Expiry is checked only on read (lazy eviction); there is no background
// sweep since the cache is small and read dominated. It also tracks which
// identities have a resolution in flight so callers can show progress.
type Cache struct {
	mu       sync.Mutex
	ttl      time.Duration
	entries  map[string]*Record
	inFlight map[string]bool
	clock    func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:      ttl,
		entries:  map[string]*Record{},
		inFlight: map[string]bool{},
		clock:    time.Now,
	}
}

// NormalizeIdentity lowercases and trims an identity so lookups are case
// insensitive.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// Get returns the cached record for identity, or nil when absent or
// expired. An expired entry is deleted as a side effect and reported as a
// miss.
func (c *Cache) Get(identity string) *Record {
	key := NormalizeIdentity(identity)
	c.mu.Lock()
	defer c.mu.Unlock()

	record, found := c.entries[key]
	if !found {
		return nil
	}
	if c.clock().Sub(record.ResolvedAt) > c.ttl {
		delete(c.entries, key)
		return nil
	}
	return record
}

// Put stores record under its normalized identity with ResolvedAt set to
// now, overwriting any previous entry.
func (c *Cache) Put(identity string, record *Record) {
	key := NormalizeIdentity(identity)
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *record
	stored.Identity = key
	stored.ResolvedAt = c.clock()
	c.entries[key] = &stored
}

func (c *Cache) Invalidate(identity string) {
	key := NormalizeIdentity(identity)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*Record{}
	c.inFlight = map[string]bool{}
}

func (c *Cache) IsInFlight(identity string) bool {
	key := NormalizeIdentity(identity)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight[key]
}

func (c *Cache) SetInFlight(identity string, inFlight bool) {
	key := NormalizeIdentity(identity)
	c.mu.Lock()
	defer c.mu.Unlock()
	if inFlight {
		c.inFlight[key] = true
	} else {
		delete(c.inFlight, key)
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
