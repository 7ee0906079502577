package tariff

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/wattline/wattline/internal/core/resource"
	"github.com/wattline/wattline/internal/metrics"
)

// DefaultCacheCapacity is the default number of lookups to cache.
const DefaultCacheCapacity = 1000

// Lister looks up the tariffs applying to one resource.
type Lister interface {
	ListTariffs(ctx context.Context, resourceID, providerID string, meterType resource.MeterType) ([]Tariff, error)
}

// CacheKey identifies one tariff lookup.
type CacheKey struct {
	ResourceID string
	ProviderID string
	MeterType  resource.MeterType
}

// Cache is a thread-safe LRU cache of tariff lookups whose entries expire
// after a TTL. It is owned by whoever builds the engine; writers call
// Invalidate or Clear after changing tariffs.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	nowFn    func() time.Time
	entries  map[CacheKey]*list.Element
	order    *list.List
}

type cacheEntry struct {
	key      CacheKey
	tariffs  []Tariff
	expireAt time.Time
}

// NewCache creates a cache holding at most capacity lookups for ttl each.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		nowFn:    time.Now,
		entries:  make(map[CacheKey]*list.Element),
		order:    list.New(),
	}
}

// Get returns a cached lookup. ok is false on a miss or an expired entry.
func (c *Cache) Get(key CacheKey) ([]Tariff, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.entries[key]
	if !exists {
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)
	if !c.nowFn().Before(entry.expireAt) {
		delete(c.entries, key)
		c.order.Remove(elem)
		return nil, false
	}

	c.order.MoveToFront(elem)
	out := make([]Tariff, len(entry.tariffs))
	copy(out, entry.tariffs)
	return out, true
}

// Put stores a lookup, evicting the least recently used entry if full.
func (c *Cache) Put(key CacheKey, tariffs []Tariff) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]Tariff, len(tariffs))
	copy(stored, tariffs)
	expireAt := c.nowFn().Add(c.ttl)

	if elem, exists := c.entries[key]; exists {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		entry.tariffs = stored
		entry.expireAt = expireAt
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.entries, oldest.Value.(*cacheEntry).key)
			c.order.Remove(oldest)
		}
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, tariffs: stored, expireAt: expireAt})
}

// Invalidate drops every cached lookup that could contain tariffs of the
// given scope.
func (c *Cache) Invalidate(scope Scope, scopeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, elem := range c.entries {
		if (scope == ScopeResource && key.ResourceID == scopeID) ||
			(scope == ScopeProvider && key.ProviderID == scopeID) {
			delete(c.entries, key)
			c.order.Remove(elem)
		}
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[CacheKey]*list.Element)
	c.order = list.New()
}

// CachedLister serves lookups from a Cache and falls through to the wrapped
// Lister on a miss.
type CachedLister struct {
	next  Lister
	cache *Cache
}

// NewCachedLister wraps next with cache.
func NewCachedLister(next Lister, cache *Cache) *CachedLister {
	return &CachedLister{next: next, cache: cache}
}

// ListTariffs implements Lister.
func (l *CachedLister) ListTariffs(ctx context.Context, resourceID, providerID string, meterType resource.MeterType) ([]Tariff, error) {
	key := CacheKey{ResourceID: resourceID, ProviderID: providerID, MeterType: meterType}
	if tariffs, ok := l.cache.Get(key); ok {
		metrics.TariffCacheLookupsTotal.WithLabelValues("hit").Inc()
		return tariffs, nil
	}
	metrics.TariffCacheLookupsTotal.WithLabelValues("miss").Inc()
	tariffs, err := l.next.ListTariffs(ctx, resourceID, providerID, meterType)
	if err != nil {
		return nil, err
	}
	l.cache.Put(key, tariffs)
	return tariffs, nil
}
