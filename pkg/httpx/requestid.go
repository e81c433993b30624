package httpx

import (
	"strings"
	"unicode"

	"github.com/Gunvolt24/wc_bronze_sync/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	maxRequestIDLen = 128
)

// RequestIDMiddleware — сквозной идентификатор запроса.
// Берёт X-Request-ID, затем X-Correlation-ID (планировщики шлют его), иначе UUID.
// Значение попадает в контекст и возвращается в заголовке X-Request-ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := incomingRequestID(c)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// incomingRequestID — первый пригодный идентификатор из заголовков клиента.
// Слишком длинные и содержащие управляющие символы значения отбрасываются: они уходят в логи.
func incomingRequestID(c *gin.Context) string {
	for _, h := range [...]string{HeaderRequestID, HeaderCorrelationID} {
		v := strings.TrimSpace(c.GetHeader(h))
		if v != "" && len(v) <= maxRequestIDLen && strings.IndexFunc(v, unicode.IsControl) < 0 {
			return v
		}
	}
	return ""
}
