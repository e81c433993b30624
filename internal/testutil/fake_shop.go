package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

// FakeShop — httptest-сервер с REST wc/v3: orders, products, products/{id}/variations.
// Пагинация через page/per_page и X-WP-TotalPages; заказы фильтруются по after/before.
type FakeShop struct {
	Server *httptest.Server

	Key, Secret string // пустые — без проверки Basic auth
	FailStatus  int    // != 0 — любой запрос отвечает этим статусом

	mu         sync.Mutex
	orders     []domain.Order
	products   []domain.Product
	variations map[int64][]domain.Variation

	requests atomic.Int64
}

// NewFakeShop — сервер запускается сразу; закрывать через Close.
func NewFakeShop() *FakeShop {
	f := &FakeShop{variations: map[int64][]domain.Variation{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

// Close — останавливает сервер.
func (f *FakeShop) Close() { f.Server.Close() }

// URL — base_url аккаунта.
func (f *FakeShop) URL() string { return f.Server.URL }

// Requests — число обработанных запросов.
func (f *FakeShop) Requests() int64 { return f.requests.Load() }

// Tenant — аккаунт, указывающий на этот сервер.
func (f *FakeShop) Tenant(id string) domain.TenantConfig {
	key, secret := f.Key, f.Secret
	if key == "" {
		key, secret = "ck_"+id, "cs_"+id
	}
	return domain.TenantConfig{ID: id, Name: "Shop " + id, BaseURL: f.URL(), ConsumerKey: key, ConsumerSecret: secret}
}

func (f *FakeShop) AddOrders(orders ...domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, orders...)
}

func (f *FakeShop) AddProducts(products ...domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = append(f.products, products...)
}

func (f *FakeShop) SetVariations(parentID int64, vs ...domain.Variation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.variations[parentID] = vs
}

// MakeShopOrder — заказ с позициями, созданный в created.
func MakeShopOrder(id int64, created time.Time, lines int) domain.Order {
	o := domain.Order{
		ID:          id,
		Number:      strconv.FormatInt(id, 10),
		Status:      "completed",
		Currency:    "USD",
		DateCreated: domain.APITime{Time: created.UTC()},
		Total:       strconv.Itoa(lines * 10),
		Billing:     domain.Billing{Email: "buyer@example.com", Country: "US"},
		MetaData: []domain.MetaData{
			{Key: "_wc_order_attribution_source_type", Value: json.RawMessage(`"organic"`)},
		},
	}
	for i := 1; i <= lines; i++ {
		o.LineItems = append(o.LineItems, domain.LineItem{
			ID: id*100 + int64(i), Name: "Widget", ProductID: int64(i), Quantity: 1, Total: "10.00",
		})
	}
	return o
}

func (f *FakeShop) serve(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	if f.FailStatus != 0 {
		http.Error(w, `{"code":"fake_error"}`, f.FailStatus)
		return
	}
	if f.Key != "" {
		user, pass, ok := r.BasicAuth()
		if !ok || user != f.Key || pass != f.Secret {
			http.Error(w, `{"code":"woocommerce_rest_cannot_view"}`, http.StatusUnauthorized)
			return
		}
	}

	path := strings.TrimPrefix(r.URL.Path, "/wp-json/wc/v3/")
	parts := strings.Split(strings.Trim(path, "/"), "/")

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case len(parts) == 1 && parts[0] == "orders":
		writePage(w, r, f.ordersInWindow(r))
	case len(parts) == 1 && parts[0] == "products":
		writePage(w, r, f.products)
	case len(parts) == 3 && parts[0] == "products" && parts[2] == "variations":
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		writePage(w, r, f.variations[id])
	default:
		http.NotFound(w, r)
	}
}

// ordersInWindow — after/before исключающие, как в API.
func (f *FakeShop) ordersInWindow(r *http.Request) []domain.Order {
	const layout = "2006-01-02T15:04:05"
	q := r.URL.Query()
	after, errA := time.ParseInLocation(layout, q.Get("after"), time.UTC)
	before, errB := time.ParseInLocation(layout, q.Get("before"), time.UTC)

	out := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		created := o.DateCreated.Time
		if errA == nil && !created.After(after) {
			continue
		}
		if errB == nil && !created.Before(before) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func writePage[T any](w http.ResponseWriter, r *http.Request, items []T) {
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 {
		perPage = 10
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	total := (len(items) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-WP-Total", strconv.Itoa(len(items)))
	w.Header().Set("X-WP-TotalPages", strconv.Itoa(total))
	chunk := items[start:end]
	if chunk == nil {
		chunk = []T{}
	}
	_ = json.NewEncoder(w).Encode(chunk)
}
