package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что BronzeRepository удовлетворяет интерфейсу BronzeSink.
var _ ports.BronzeSink = (*BronzeRepository)(nil)

// BronzeRepository — bronze-таблицы на Postgres (pgxpool).
// Каждый вызов — одна транзакция; строки уходят одним pgx.Batch.
type BronzeRepository struct {
	pool *pgxpool.Pool
}

// NewBronzeRepository — конструктор BronzeRepository.
func NewBronzeRepository(pool *pgxpool.Pool) *BronzeRepository {
	return &BronzeRepository{pool: pool}
}

// ingested_at не обновляется: повторная синхронизация меняет только поля строки.
const upsertOrderRowSQL = `
	INSERT INTO bronze_orders (
		tenant_id, order_id, line_item_id, site, order_number, status, currency,
		date_created, date_modified, date_paid, customer_id, billing_email, billing_country,
		payment_method, payment_method_title, order_total, total_tax, shipping_total, discount_total,
		product_id, variation_id, sku, product_name, quantity, item_subtotal, item_total, meta
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27
	)
	ON CONFLICT (tenant_id, order_id, line_item_id) DO UPDATE SET
		site = EXCLUDED.site,
		order_number = EXCLUDED.order_number,
		status = EXCLUDED.status,
		currency = EXCLUDED.currency,
		date_created = EXCLUDED.date_created,
		date_modified = EXCLUDED.date_modified,
		date_paid = EXCLUDED.date_paid,
		customer_id = EXCLUDED.customer_id,
		billing_email = EXCLUDED.billing_email,
		billing_country = EXCLUDED.billing_country,
		payment_method = EXCLUDED.payment_method,
		payment_method_title = EXCLUDED.payment_method_title,
		order_total = EXCLUDED.order_total,
		total_tax = EXCLUDED.total_tax,
		shipping_total = EXCLUDED.shipping_total,
		discount_total = EXCLUDED.discount_total,
		product_id = EXCLUDED.product_id,
		variation_id = EXCLUDED.variation_id,
		sku = EXCLUDED.sku,
		product_name = EXCLUDED.product_name,
		quantity = EXCLUDED.quantity,
		item_subtotal = EXCLUDED.item_subtotal,
		item_total = EXCLUDED.item_total,
		meta = EXCLUDED.meta,
		updated_at = now()
`

const upsertProductRowSQL = `
	INSERT INTO bronze_products (
		tenant_id, product_id, parent_id, site, name, slug, type, status, sku,
		price, regular_price, sale_price, stock_status, stock_quantity,
		date_created, date_modified, attributes
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	ON CONFLICT (tenant_id, product_id) DO UPDATE SET
		parent_id = EXCLUDED.parent_id,
		site = EXCLUDED.site,
		name = EXCLUDED.name,
		slug = EXCLUDED.slug,
		type = EXCLUDED.type,
		status = EXCLUDED.status,
		sku = EXCLUDED.sku,
		price = EXCLUDED.price,
		regular_price = EXCLUDED.regular_price,
		sale_price = EXCLUDED.sale_price,
		stock_status = EXCLUDED.stock_status,
		stock_quantity = EXCLUDED.stock_quantity,
		date_created = EXCLUDED.date_created,
		date_modified = EXCLUDED.date_modified,
		attributes = EXCLUDED.attributes,
		updated_at = now()
`

// UpsertOrderRows — транзакционный upsert строк заказов по (tenant_id, order_id, line_item_id).
func (r *BronzeRepository) UpsertOrderRows(ctx context.Context, rows []domain.OrderRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i := range rows {
		row := &rows[i]
		meta, err := jsonObject(row.Meta)
		if err != nil {
			return fmt.Errorf("order %d line %d meta: %w", row.OrderID, row.LineItemID, err)
		}
		batch.Queue(upsertOrderRowSQL,
			row.TenantID, row.OrderID, row.LineItemID, row.Site, row.OrderNumber, row.Status, row.Currency,
			row.DateCreated, row.DateModified, row.DatePaid, row.CustomerID, row.BillingEmail, row.BillingCountry,
			row.PaymentMethod, row.PaymentMethodTitle, row.OrderTotal, row.TotalTax, row.ShippingTotal, row.DiscountTotal,
			row.ProductID, row.VariationID, row.SKU, row.ProductName, row.Quantity, row.ItemSubtotal, row.ItemTotal, meta,
		)
	}
	return r.sendInTx(ctx, batch, "bronze_orders")
}

// UpsertProductRows — транзакционный upsert строк товаров по (tenant_id, product_id).
func (r *BronzeRepository) UpsertProductRows(ctx context.Context, rows []domain.ProductRow) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i := range rows {
		row := &rows[i]
		attrs, err := jsonObject(row.Attributes)
		if err != nil {
			return fmt.Errorf("product %d attributes: %w", row.ProductID, err)
		}
		batch.Queue(upsertProductRowSQL,
			row.TenantID, row.ProductID, row.ParentID, row.Site, row.Name, row.Slug, row.Type, row.Status, row.SKU,
			row.Price, row.RegularPrice, row.SalePrice, row.StockStatus, row.StockQuantity,
			row.DateCreated, row.DateModified, attrs,
		)
	}
	return r.sendInTx(ctx, batch, "bronze_products")
}

// sendInTx — весь батч в одной транзакции: либо все строки, либо ни одной.
func (r *BronzeRepository) sendInTx(ctx context.Context, batch *pgx.Batch, table string) error {
	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s: %w", table, err)
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	results := transaction.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("upsert %s row %d: %w", table, i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close %s batch: %w", table, err)
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}

// jsonObject — JSONB-значение; пустой мешок пишется как {}.
func jsonObject(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}
