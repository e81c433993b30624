package httpx

import (
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/gin-gonic/gin"
)

// RequestLogger — middleware для логирования HTTP-запросов.
// skip — маршруты, которые не логируются (health, метрики).
func RequestLogger(log ports.Logger, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if _, ok := skipped[path]; ok {
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		// request_id и trace_id логгер берёт из контекста сам
		ctx := c.Request.Context()
		if c.Writer.Status() >= 500 {
			log.Errorf(ctx, "request method=%s path=%s status=%d ip=%s duration=%s errors=%s",
				c.Request.Method, path, c.Writer.Status(), c.ClientIP(), time.Since(start), c.Errors.String())
			return
		}
		log.Infof(ctx, "request method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method, path, c.Writer.Status(), c.ClientIP(), time.Since(start), c.Writer.Size())
	}
}
