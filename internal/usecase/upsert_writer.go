package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
)

// DefaultBatchSize — строк в одном upsert (одна транзакция).
const DefaultBatchSize = 500

// ProductWriteOutcome — итог записи товаров: сбойные под-батчи пропускаются и считаются.
type ProductWriteOutcome struct {
	Written       int
	FailedBatches int
}

// UpsertWriter — запись bronze-строк в хранилище под-батчами.
// Заказы: первый сбойный под-батч прерывает запись (ошибка аккаунта).
// Товары: сбойный под-батч логируется и пропускается.
type UpsertWriter struct {
	sink      ports.BronzeSink
	log       ports.Logger
	batchSize int
}

// NewUpsertWriter — DI-конструктор; batchSize <= 0 → DefaultBatchSize.
func NewUpsertWriter(sink ports.BronzeSink, log ports.Logger, batchSize int) *UpsertWriter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &UpsertWriter{sink: sink, log: log, batchSize: batchSize}
}

// WriteOrders — возвращает число записанных строк; ошибка оборачивает domain.ErrOrderBatchFailed.
func (w *UpsertWriter) WriteOrders(ctx context.Context, rows []domain.OrderRow) (int, error) {
	written := 0
	for start := 0; start < len(rows); start += w.batchSize {
		end := min(start+w.batchSize, len(rows))

		if err := w.sink.UpsertOrderRows(ctx, rows[start:end]); err != nil {
			metrics.FailedBatches.WithLabelValues("orders").Inc()
			w.log.Errorf(ctx, "order batch [%d:%d] failed: %v", start, end, err)
			return written, fmt.Errorf("%w: rows [%d:%d]: %w", domain.ErrOrderBatchFailed, start, end, err)
		}
		written += end - start
		metrics.RowsWritten.WithLabelValues("orders").Add(float64(end - start))
	}
	return written, nil
}

// WriteProducts — отмена контекста прерывает запись; прочие ошибки под-батча не фатальны.
func (w *UpsertWriter) WriteProducts(ctx context.Context, rows []domain.ProductRow) (ProductWriteOutcome, error) {
	var out ProductWriteOutcome
	for start := 0; start < len(rows); start += w.batchSize {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		end := min(start+w.batchSize, len(rows))

		if err := w.sink.UpsertProductRows(ctx, rows[start:end]); err != nil {
			out.FailedBatches++
			metrics.FailedBatches.WithLabelValues("products").Inc()
			w.log.Warnf(ctx, "product batch [%d:%d] skipped: %v", start, end, err)
			continue
		}
		out.Written += end - start
		metrics.RowsWritten.WithLabelValues("products").Add(float64(end - start))
	}
	return out, nil
}
