package ports

import (
	"context"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
)

// SyncService — точка входа триггеров (HTTP, Kafka, CLI).
type SyncService interface {
	// Run — один чанк по всем аккаунтам. Ошибка только инфраструктурная (хранилище аккаунтов);
	// сбои отдельных аккаунтов лежат в отчёте.
	Run(ctx context.Context, req domain.SyncRequest) (*domain.SyncReport, error)
	Statuses(ctx context.Context) ([]domain.SyncStatus, error)
}

// ReportPublisher — доставка отчёта запуска во внешнюю систему.
type ReportPublisher interface {
	Publish(ctx context.Context, req domain.SyncRequest, report *domain.SyncReport) error
}

// TriggerPublisher — постановка следующего запуска в очередь (протокол продолжения).
type TriggerPublisher interface {
	PublishTrigger(ctx context.Context, req domain.SyncRequest) error
}

// TriggerConsumer — фоновый источник триггеров; Run блокируется до отмены ctx.
type TriggerConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
