// Пакет memory — in-memory LRU-кэш с TTL и кэширующий источник аккаунтов поверх него.
package memory

import (
	"container/list"
	"sync"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
)

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// LRUCacheTTL — LRU с TTL (скользящим: продлевается на каждом попадании).
// clone защищает закэшированные значения от изменений снаружи.
type LRUCacheTTL[V any] struct {
	capacity int
	ttl      time.Duration
	clone    func(V) V

	ll    *list.List
	cache map[string]*list.Element

	mu sync.Mutex
}

// NewLRUCacheTTL — capacity <= 0 → 1; ttl <= 0 — без истечения; clone == nil — без копирования.
func NewLRUCacheTTL[V any](capacity int, ttl time.Duration, clone func(V) V) *LRUCacheTTL[V] {
	if capacity <= 0 {
		capacity = 1
	}
	if clone == nil {
		clone = func(v V) V { return v }
	}
	return &LRUCacheTTL[V]{
		capacity: capacity,
		ttl:      ttl,
		clone:    clone,
		ll:       list.New(),
		cache:    make(map[string]*list.Element),
	}
}

// Get — значение по ключу; просроченное удаляется.
func (c *LRUCacheTTL[V]) Get(key string) (V, bool) {
	var zero V
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return zero, false
	}
	ent := elem.Value.(*entry[V])
	if c.expired(ent, now) {
		c.drop(elem, dropExpired)
		return zero, false
	}
	c.ll.MoveToFront(elem)
	ent.expiresAt = c.deadline(now)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return c.clone(ent.value), true
}

// Set — кладёт значение, при переполнении вытесняет самое старое.
func (c *LRUCacheTTL[V]) Set(key string, value V) {
	if key == "" {
		return
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = c.clone(value)
		ent.expiresAt = c.deadline(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.sweepTail(now)

	c.cache[key] = c.ll.PushFront(&entry[V]{
		key:       key,
		value:     c.clone(value),
		expiresAt: c.deadline(now),
	})
	if c.ll.Len() > c.capacity {
		c.drop(c.ll.Back(), dropEvicted)
		return
	}
	metrics.CacheSize.Set(float64(c.ll.Len()))
}

// Delete — удаляет ключ (если есть).
func (c *LRUCacheTTL[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.cache[key]; ok {
		c.drop(elem, dropDeleted)
	}
}

// Len — текущее число элементов (включая ещё не вычищенные просроченные).
func (c *LRUCacheTTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
