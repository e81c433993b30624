// Пакет memory — хранилища в памяти процесса: bronze-строки, статусы, список аккаунтов.
// Используются CLI в режиме dry-run и тестами; семантика upsert та же, что у Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

var _ ports.BronzeSink = (*BronzeStore)(nil)

// BronzeStore — bronze_orders и bronze_products в картах по натуральному ключу.
type BronzeStore struct {
	mu         sync.RWMutex
	orders     map[domain.OrderRowKey]domain.OrderRow
	products   map[domain.ProductRowKey]domain.ProductRow
	ingestedAt map[any]time.Time
	now        func() time.Time
}

func NewBronzeStore() *BronzeStore {
	return &BronzeStore{
		orders:     make(map[domain.OrderRowKey]domain.OrderRow),
		products:   make(map[domain.ProductRowKey]domain.ProductRow),
		ingestedAt: make(map[any]time.Time),
		now:        time.Now,
	}
}

// UpsertOrderRows — вставка или замена по (tenant_id, order_id, line_item_id).
func (s *BronzeStore) UpsertOrderRows(ctx context.Context, rows []domain.OrderRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range rows {
		key := rows[i].Key()
		s.orders[key] = rows[i]
		s.touch(key)
	}
	return nil
}

// UpsertProductRows — вставка или замена по (tenant_id, product_id).
func (s *BronzeStore) UpsertProductRows(ctx context.Context, rows []domain.ProductRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range rows {
		key := rows[i].Key()
		s.products[key] = rows[i]
		s.touch(key)
	}
	return nil
}

// touch — ingested_at фиксируется при первой вставке.
func (s *BronzeStore) touch(key any) {
	if _, ok := s.ingestedAt[key]; !ok {
		s.ingestedAt[key] = s.now().UTC()
	}
}

// OrderRows — снимок строк заказов, отсортированный по ключу.
func (s *BronzeStore) OrderRows() []domain.OrderRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.OrderRow, 0, len(s.orders))
	for _, r := range s.orders {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TenantID != b.TenantID {
			return a.TenantID < b.TenantID
		}
		if a.OrderID != b.OrderID {
			return a.OrderID < b.OrderID
		}
		return a.LineItemID < b.LineItemID
	})
	return out
}

// ProductRows — снимок строк товаров, отсортированный по ключу.
func (s *BronzeStore) ProductRows() []domain.ProductRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.ProductRow, 0, len(s.products))
	for _, r := range s.products {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TenantID != out[j].TenantID {
			return out[i].TenantID < out[j].TenantID
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// IngestedAt — время первой вставки строки.
func (s *BronzeStore) IngestedAt(key any) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.ingestedAt[key]
	return ts, ok
}
