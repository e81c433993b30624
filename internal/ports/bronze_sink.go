package ports

import (
	"context"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

// BronzeSink — upsert строк bronze-слоя по натуральному ключу.
// Один вызов — одна транзакция: либо записан весь набор, либо ничего.
type BronzeSink interface {
	UpsertOrderRows(ctx context.Context, rows []domain.OrderRow) error
	UpsertProductRows(ctx context.Context, rows []domain.ProductRow) error
}
