// Пакет commerce — постраничный клиент REST API магазина (WooCommerce wc/v3).
package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Ресурсы API (значение метки resource в метриках).
const (
	ResourceOrders     = "orders"
	ResourceProducts   = "products"
	ResourceVariations = "variations"
)

const (
	apiPrefix         = "/wp-json/wc/v3/"
	headerTotalPages  = "X-WP-TotalPages"
	apiDateTimeLayout = "2006-01-02T15:04:05"
)

// Limits — размер страницы и жёсткие потолки числа страниц на ресурс.
type Limits struct {
	PerPage           int
	MaxOrderPages     int
	MaxProductPages   int
	MaxVariationPages int
}

// DefaultLimits — 100 записей на страницу; 50 страниц заказов, по 10 товаров и вариаций.
func DefaultLimits() Limits {
	return Limits{PerPage: 100, MaxOrderPages: 50, MaxProductPages: 10, MaxVariationPages: 10}
}

func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.PerPage <= 0 || l.PerPage > 100 {
		l.PerPage = def.PerPage
	}
	if l.MaxOrderPages <= 0 {
		l.MaxOrderPages = def.MaxOrderPages
	}
	if l.MaxProductPages <= 0 {
		l.MaxProductPages = def.MaxProductPages
	}
	if l.MaxVariationPages <= 0 {
		l.MaxVariationPages = def.MaxVariationPages
	}
	return l
}

// Client — клиент API магазина. Один экземпляр на все аккаунты: учётные данные берутся из TenantConfig.
type Client struct {
	httpClient *http.Client
	limits     Limits
	log        ports.Logger
	userAgent  string
}

// Option — настройка клиента.
type Option func(*Client)

// WithHTTPClient — свой *http.Client (тесты, прокси).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent — заголовок User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

var _ ports.CommerceClient = (*Client)(nil)

// NewClient — клиент с otelhttp-транспортом и таймаутом на запрос.
func NewClient(limits Limits, timeout time.Duration, log ports.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limits:    limits.withDefaults(),
		log:       log,
		userAgent: "wc-bronze-sync/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Limits — действующие лимиты (после подстановки дефолтов).
func (c *Client) Limits() Limits { return c.limits }

// FetchOrders — заказы, созданные в [since, until], по возрастанию даты.
// after/before в API исключающие, поэтому after сдвигается на секунду назад.
func (c *Client) FetchOrders(ctx context.Context, tenant domain.TenantConfig, since, until time.Time) ([]domain.Order, error) {
	q := url.Values{}
	q.Set("after", since.UTC().Add(-time.Second).Format(apiDateTimeLayout))
	q.Set("before", until.UTC().Format(apiDateTimeLayout))
	q.Set("dates_are_gmt", "true")
	q.Set("orderby", "date")
	q.Set("order", "asc")
	return fetchAll[domain.Order](ctx, c, tenant, ResourceOrders, "orders", q, c.limits.MaxOrderPages)
}

// FetchProducts — весь каталог аккаунта (в пределах потолка страниц).
func (c *Client) FetchProducts(ctx context.Context, tenant domain.TenantConfig) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("orderby", "id")
	q.Set("order", "asc")
	return fetchAll[domain.Product](ctx, c, tenant, ResourceProducts, "products", q, c.limits.MaxProductPages)
}

// FetchVariations — вариации одного товара.
func (c *Client) FetchVariations(ctx context.Context, tenant domain.TenantConfig, parentID int64) ([]domain.Variation, error) {
	path := "products/" + strconv.FormatInt(parentID, 10) + "/variations"
	return fetchAll[domain.Variation](ctx, c, tenant, ResourceVariations, path, url.Values{}, c.limits.MaxVariationPages)
}

// fetchAll — страницы с 1 до первой пустой, до X-WP-TotalPages или до потолка maxPages.
// Ошибка любой страницы отбрасывает всё прочитанное.
func fetchAll[T any](
	ctx context.Context,
	c *Client,
	tenant domain.TenantConfig,
	resource, path string,
	query url.Values,
	maxPages int,
) ([]T, error) {
	endpoint, err := resourceURL(tenant, path)
	if err != nil {
		return nil, err
	}

	var all []T
	for page := 1; ; page++ {
		items, totalPages, err := fetchPage[T](ctx, c, tenant, endpoint, resource, page, query)
		if err != nil {
			metrics.APIErrors.WithLabelValues(resource).Inc()
			return nil, err
		}
		metrics.APIPages.WithLabelValues(resource).Inc()

		if len(items) == 0 {
			break
		}
		all = append(all, items...)

		if totalPages > 0 && page >= totalPages {
			break
		}
		if page >= maxPages {
			if totalPages == 0 || totalPages > maxPages {
				c.log.Warnf(ctx, "%s: page ceiling %d reached (total_pages=%d), remaining pages skipped",
					resource, maxPages, totalPages)
			}
			break
		}
	}
	return all, nil
}

func fetchPage[T any](
	ctx context.Context,
	c *Client,
	tenant domain.TenantConfig,
	endpoint *url.URL,
	resource string,
	page int,
	query url.Values,
) ([]T, int, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("per_page", strconv.Itoa(c.limits.PerPage))
	q.Set("page", strconv.Itoa(page))

	u := *endpoint
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("%s page %d: build request: %w", resource, page, err)
	}
	req.SetBasicAuth(tenant.ConsumerKey, tenant.ConsumerSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s page %d: %w", ErrAPI, resource, page, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, 0, &APIError{
			Resource:   resource,
			Page:       page,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var items []T
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, 0, fmt.Errorf("%w: %s page %d: decode: %w", ErrAPI, resource, page, err)
	}

	totalPages, _ := strconv.Atoi(strings.TrimSpace(resp.Header.Get(headerTotalPages)))
	return items, totalPages, nil
}

// resourceURL — {base}/wp-json/wc/v3/{path}.
func resourceURL(tenant domain.TenantConfig, path string) (*url.URL, error) {
	base, err := tenant.ParsedBaseURL()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	u := *base
	u.Path = strings.TrimRight(u.Path, "/") + apiPrefix + path
	u.RawQuery = ""
	u.Fragment = ""
	return &u, nil
}
