package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
)

// Причины удаления из кэша (метка bronze_cache_ops_total).
const (
	dropExpired = "expired"
	dropEvicted = "evicted"
	dropDeleted = ""
)

// drop — убирает элемент из списка и индекса, обновляет метрики.
func (c *LRUCacheTTL[V]) drop(elem *list.Element, reason string) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry[V]); ok {
		delete(c.cache, ent.key)
	}
	c.ll.Remove(elem)
	if reason != dropDeleted {
		metrics.CacheOps.WithLabelValues(reason).Inc()
	}
	metrics.CacheSize.Set(float64(c.ll.Len()))
}

func (c *LRUCacheTTL[V]) expired(ent *entry[V], now time.Time) bool {
	return c.ttl > 0 && now.After(ent.expiresAt)
}

// deadline — момент истечения записи, созданной/продлённой в now (нулевой без TTL).
func (c *LRUCacheTTL[V]) deadline(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// sweepTail — снимает просроченные записи с хвоста, пока не встретит живую.
func (c *LRUCacheTTL[V]) sweepTail(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		ent, ok := back.Value.(*entry[V])
		if ok && !c.expired(ent, now) {
			return
		}
		c.drop(back, dropExpired)
	}
}
