package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
)

var _ ports.BronzeSink = (*BronzeStore)(nil)

// BronzeStore — bronze-таблицы в SQLite. Батч — одна транзакция.
type BronzeStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewBronzeStore — конструктор BronzeStore.
func NewBronzeStore(db *sql.DB) *BronzeStore {
	return &BronzeStore{db: db, now: time.Now}
}

// ingested_at только при вставке.
const upsertOrderRowSQL = `
INSERT INTO bronze_orders (
	tenant_id, order_id, line_item_id, site, order_number, status, currency,
	date_created, date_modified, date_paid, customer_id, billing_email, billing_country,
	payment_method, payment_method_title, order_total, total_tax, shipping_total, discount_total,
	product_id, variation_id, sku, product_name, quantity, item_subtotal, item_total, meta,
	ingested_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (tenant_id, order_id, line_item_id) DO UPDATE SET
	site = excluded.site,
	order_number = excluded.order_number,
	status = excluded.status,
	currency = excluded.currency,
	date_created = excluded.date_created,
	date_modified = excluded.date_modified,
	date_paid = excluded.date_paid,
	customer_id = excluded.customer_id,
	billing_email = excluded.billing_email,
	billing_country = excluded.billing_country,
	payment_method = excluded.payment_method,
	payment_method_title = excluded.payment_method_title,
	order_total = excluded.order_total,
	total_tax = excluded.total_tax,
	shipping_total = excluded.shipping_total,
	discount_total = excluded.discount_total,
	product_id = excluded.product_id,
	variation_id = excluded.variation_id,
	sku = excluded.sku,
	product_name = excluded.product_name,
	quantity = excluded.quantity,
	item_subtotal = excluded.item_subtotal,
	item_total = excluded.item_total,
	meta = excluded.meta,
	updated_at = excluded.updated_at
`

const upsertProductRowSQL = `
INSERT INTO bronze_products (
	tenant_id, product_id, parent_id, site, name, slug, type, status, sku,
	price, regular_price, sale_price, stock_status, stock_quantity,
	date_created, date_modified, attributes, ingested_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (tenant_id, product_id) DO UPDATE SET
	parent_id = excluded.parent_id,
	site = excluded.site,
	name = excluded.name,
	slug = excluded.slug,
	type = excluded.type,
	status = excluded.status,
	sku = excluded.sku,
	price = excluded.price,
	regular_price = excluded.regular_price,
	sale_price = excluded.sale_price,
	stock_status = excluded.stock_status,
	stock_quantity = excluded.stock_quantity,
	date_created = excluded.date_created,
	date_modified = excluded.date_modified,
	attributes = excluded.attributes,
	updated_at = excluded.updated_at
`

// UpsertOrderRows — upsert строк заказов по (tenant_id, order_id, line_item_id).
func (s *BronzeStore) UpsertOrderRows(ctx context.Context, rows []domain.OrderRow) error {
	if len(rows) == 0 {
		return nil
	}
	ts := s.now().UTC().Format(time.RFC3339)
	return s.inTx(ctx, upsertOrderRowSQL, len(rows), func(i int) ([]any, error) {
		row := &rows[i]
		meta, err := jsonText(row.Meta)
		if err != nil {
			return nil, fmt.Errorf("order %d line %d meta: %w", row.OrderID, row.LineItemID, err)
		}
		return []any{
			row.TenantID, row.OrderID, row.LineItemID, row.Site, row.OrderNumber, row.Status, row.Currency,
			timeText(row.DateCreated), timeText(row.DateModified), timeText(row.DatePaid),
			row.CustomerID, row.BillingEmail, row.BillingCountry, row.PaymentMethod, row.PaymentMethodTitle,
			row.OrderTotal, row.TotalTax, row.ShippingTotal, row.DiscountTotal,
			row.ProductID, row.VariationID, row.SKU, row.ProductName, row.Quantity, row.ItemSubtotal, row.ItemTotal,
			meta, ts, ts,
		}, nil
	})
}

// UpsertProductRows — upsert строк товаров по (tenant_id, product_id).
func (s *BronzeStore) UpsertProductRows(ctx context.Context, rows []domain.ProductRow) error {
	if len(rows) == 0 {
		return nil
	}
	ts := s.now().UTC().Format(time.RFC3339)
	return s.inTx(ctx, upsertProductRowSQL, len(rows), func(i int) ([]any, error) {
		row := &rows[i]
		attrs, err := jsonText(row.Attributes)
		if err != nil {
			return nil, fmt.Errorf("product %d attributes: %w", row.ProductID, err)
		}
		return []any{
			row.TenantID, row.ProductID, row.ParentID, row.Site, row.Name, row.Slug, row.Type, row.Status, row.SKU,
			row.Price, row.RegularPrice, row.SalePrice, row.StockStatus, row.StockQuantity,
			timeText(row.DateCreated), timeText(row.DateModified), attrs, ts, ts,
		}, nil
	})
}

// inTx — одна подготовленная команда на n строк в одной транзакции.
func (s *BronzeStore) inTx(ctx context.Context, query string, n int, args func(i int) ([]any, error)) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		values, err := args(i)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("upsert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func jsonText(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
