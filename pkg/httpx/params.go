package httpx

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ClampInt — v в пределах [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// ParseLimitOffset — limit/offset из query. limit ограничен [1, maxLimit];
// нечисловой limit → defaultLimit, нечисловой или отрицательный offset → 0.
func ParseLimitOffset(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = ClampInt(defaultLimit, 1, maxLimit)
	if raw, ok := c.GetQuery("limit"); ok {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = ClampInt(v, 1, maxLimit)
		}
	}
	if raw, ok := c.GetQuery("offset"); ok {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}

// Paginate — окно [offset, offset+limit) среза; за пределами — пустой (не nil) срез.
func Paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) || limit <= 0 {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
