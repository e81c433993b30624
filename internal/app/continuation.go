package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
)

// ErrTooManyChunks — бэкфилл не завершился за отведённое число вызовов.
var ErrTooManyChunks = errors.New("backfill did not complete within chunk limit")

// RunContinuation — протокол продолжения: вызывает Run, пока отчёт не completed,
// подставляя start_date = next_start_date. maxChunks <= 0 — без ограничения.
// onReport получает каждый отчёт по порядку.
func RunContinuation(
	ctx context.Context,
	svc ports.SyncService,
	req domain.SyncRequest,
	maxChunks int,
	onReport func(domain.SyncRequest, *domain.SyncReport),
) (*domain.SyncReport, error) {
	for chunk := 1; ; chunk++ {
		report, err := svc.Run(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunk, err)
		}
		metrics.SyncRuns.WithLabelValues("cli", strconv.FormatBool(report.Completed)).Inc()
		if onReport != nil {
			onReport(req, report)
		}

		next := report.Continuation(req)
		if next == nil {
			return report, nil
		}
		if maxChunks > 0 && chunk >= maxChunks {
			return report, fmt.Errorf("%w (%d)", ErrTooManyChunks, maxChunks)
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		req = *next
	}
}
