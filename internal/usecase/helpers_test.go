package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// fakeShop — ответы API по аккаунтам; fail* — ошибка для аккаунта.
type fakeShop struct {
	mu         sync.Mutex
	orders     map[string][]domain.Order
	products   map[string][]domain.Product
	variations map[int64][]domain.Variation
	failOrders map[string]error
	calls      []string
	windows    [][2]time.Time
}

func newFakeShop() *fakeShop {
	return &fakeShop{
		orders:     map[string][]domain.Order{},
		products:   map[string][]domain.Product{},
		variations: map[int64][]domain.Variation{},
		failOrders: map[string]error{},
	}
}

func (f *fakeShop) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeShop) FetchOrders(_ context.Context, t domain.TenantConfig, since, until time.Time) ([]domain.Order, error) {
	f.record("orders:" + t.ID)
	f.mu.Lock()
	f.windows = append(f.windows, [2]time.Time{since, until})
	f.mu.Unlock()
	if err := f.failOrders[t.ID]; err != nil {
		return nil, err
	}
	return f.orders[t.ID], nil
}

func (f *fakeShop) FetchProducts(_ context.Context, t domain.TenantConfig) ([]domain.Product, error) {
	f.record("products:" + t.ID)
	return f.products[t.ID], nil
}

func (f *fakeShop) FetchVariations(_ context.Context, t domain.TenantConfig, parentID int64) ([]domain.Variation, error) {
	f.record(fmt.Sprintf("variations:%s:%d", t.ID, parentID))
	return f.variations[parentID], nil
}

func tenantCfg(id string) domain.TenantConfig {
	return domain.TenantConfig{
		ID:             id,
		Name:           "Shop " + id,
		BaseURL:        "https://" + id + ".example.com",
		ConsumerKey:    "ck_" + id,
		ConsumerSecret: "cs_" + id,
	}
}

func sampleOrders(ids ...int64) []domain.Order {
	out := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Order{
			ID:     id,
			Status: "completed",
			Total:  "10.00",
			LineItems: []domain.LineItem{
				{ID: id*10 + 1, ProductID: 1, Quantity: 1, Total: "10.00"},
			},
		})
	}
	return out
}

var fixedNow = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
