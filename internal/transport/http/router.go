package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/httpx"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	defaultStatusLimit = 100
	maxStatusLimit     = 1000
	maxBodyBytes       = 1 << 16
)

type Handler struct {
	service     ports.SyncService
	auth        *Authenticator
	log         ports.Logger
	timeout     time.Duration
	metricsPath string
}

// NewHandler — timeout ограничивает один HTTP-запуск синхронизации (0 — без ограничения).
func NewHandler(service ports.SyncService, auth *Authenticator, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, auth: auth, log: log, timeout: timeout, metricsPath: "/metrics"}
}

// WithMetricsPath — маршрут Prometheus; пустая строка отключает его.
func (h *Handler) WithMetricsPath(path string) *Handler {
	h.metricsPath = path
	return h
}

// NewRouter — serviceName != "" включает otelgin.
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestLogger(h.log, "/ping", h.metricsPath))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	if h.metricsPath != "" {
		r.GET(h.metricsPath, gin.WrapH(promhttp.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	authed := r.Group("/", h.auth.Middleware())
	authed.POST("/sync", h.runSync)
	authed.POST("/api/sync/bronze", h.runSync)
	authed.GET("/sync/status", h.listStatuses)

	return r
}

func (h *Handler) runSync(c *gin.Context) {
	req, err := decodeSyncRequest(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	report, err := h.service.Run(ctx, req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		h.log.Errorf(ctx, "sync run failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	metrics.SyncRuns.WithLabelValues("http", strconv.FormatBool(report.Completed)).Inc()
	c.JSON(http.StatusOK, report)
}

func (h *Handler) listStatuses(c *gin.Context) {
	statuses, err := h.service.Statuses(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "list statuses failed err=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	limit, offset := httpx.ParseLimitOffset(c, defaultStatusLimit, maxStatusLimit)
	c.JSON(http.StatusOK, gin.H{"total": len(statuses), "statuses": httpx.Paginate(statuses, limit, offset)})
}

// decodeSyncRequest — пустое тело означает запуск с параметрами по умолчанию.
func decodeSyncRequest(body io.Reader) (domain.SyncRequest, error) {
	var req domain.SyncRequest
	if body == nil {
		return req, nil
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return req, err
	}
	if len(raw) == 0 {
		return req, nil
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, errors.New("invalid JSON body")
	}
	return req, nil
}
