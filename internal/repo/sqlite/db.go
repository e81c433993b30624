// Пакет sqlite — локальный bronze-приёмник и статусы на SQLite (modernc, без cgo).
// Используется CLI sync-once для прогонов без Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // sqlite driver (pure Go)
)

const schema = `
CREATE TABLE IF NOT EXISTS bronze_orders (
	tenant_id            TEXT    NOT NULL,
	order_id             INTEGER NOT NULL,
	line_item_id         INTEGER NOT NULL DEFAULT 0,
	site                 TEXT    NOT NULL DEFAULT '',
	order_number         TEXT    NOT NULL DEFAULT '',
	status               TEXT    NOT NULL DEFAULT '',
	currency             TEXT    NOT NULL DEFAULT '',
	date_created         TEXT,
	date_modified        TEXT,
	date_paid            TEXT,
	customer_id          INTEGER NOT NULL DEFAULT 0,
	billing_email        TEXT    NOT NULL DEFAULT '',
	billing_country      TEXT    NOT NULL DEFAULT '',
	payment_method       TEXT    NOT NULL DEFAULT '',
	payment_method_title TEXT    NOT NULL DEFAULT '',
	order_total          REAL    NOT NULL DEFAULT 0,
	total_tax            REAL    NOT NULL DEFAULT 0,
	shipping_total       REAL    NOT NULL DEFAULT 0,
	discount_total       REAL    NOT NULL DEFAULT 0,
	product_id           INTEGER NOT NULL DEFAULT 0,
	variation_id         INTEGER NOT NULL DEFAULT 0,
	sku                  TEXT    NOT NULL DEFAULT '',
	product_name         TEXT    NOT NULL DEFAULT '',
	quantity             INTEGER NOT NULL DEFAULT 0,
	item_subtotal        REAL    NOT NULL DEFAULT 0,
	item_total           REAL    NOT NULL DEFAULT 0,
	meta                 TEXT    NOT NULL DEFAULT '{}',
	ingested_at          TEXT    NOT NULL,
	updated_at           TEXT    NOT NULL,
	PRIMARY KEY (tenant_id, order_id, line_item_id)
);

CREATE TABLE IF NOT EXISTS bronze_products (
	tenant_id      TEXT    NOT NULL,
	product_id     INTEGER NOT NULL,
	parent_id      INTEGER,
	site           TEXT    NOT NULL DEFAULT '',
	name           TEXT    NOT NULL DEFAULT '',
	slug           TEXT    NOT NULL DEFAULT '',
	type           TEXT    NOT NULL DEFAULT '',
	status         TEXT    NOT NULL DEFAULT '',
	sku            TEXT    NOT NULL DEFAULT '',
	price          REAL    NOT NULL DEFAULT 0,
	regular_price  REAL    NOT NULL DEFAULT 0,
	sale_price     REAL    NOT NULL DEFAULT 0,
	stock_status   TEXT    NOT NULL DEFAULT '',
	stock_quantity INTEGER,
	date_created   TEXT,
	date_modified  TEXT,
	attributes     TEXT    NOT NULL DEFAULT '{}',
	ingested_at    TEXT    NOT NULL,
	updated_at     TEXT    NOT NULL,
	PRIMARY KEY (tenant_id, product_id)
);

CREATE TABLE IF NOT EXISTS tenant_sync_status (
	tenant_id              TEXT    PRIMARY KEY,
	last_sync_at           TEXT    NOT NULL,
	last_sync_status       TEXT    NOT NULL,
	last_sync_orders_count INTEGER NOT NULL DEFAULT 0,
	last_error_message     TEXT    NOT NULL DEFAULT ''
);
`

// Open — открывает (или создаёт) базу по пути и накатывает схему.
// busy_timeout снижает ошибки SQLITE_BUSY при параллельной записи аккаунтов.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return db, nil
}

// timeText — время в колонке TEXT (RFC3339, UTC); nil → NULL.
func timeText(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
