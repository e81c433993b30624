package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
)

// ErrInvalidMessage — сообщение не разбирается как триггер; коммитится и пропускается.
var ErrInvalidMessage = errors.New("invalid trigger message")

// TriggerHandler — обработка триггера из топика: запуск чанка и, если бэкфилл не закончен,
// постановка следующего чанка в тот же топик.
type TriggerHandler struct {
	service      ports.SyncService
	continuation ports.TriggerPublisher // nil — продолжение не публикуется
	log          ports.Logger
}

// NewTriggerHandler — continuation может быть nil.
func NewTriggerHandler(service ports.SyncService, continuation ports.TriggerPublisher, log ports.Logger) *TriggerHandler {
	return &TriggerHandler{service: service, continuation: continuation, log: log}
}

// DecodeTrigger — тело триггера; пустой объект {} — запуск с параметрами по умолчанию.
func DecodeTrigger(raw []byte) (domain.SyncRequest, error) {
	var req domain.SyncRequest
	if len(bytes.TrimSpace(raw)) == 0 {
		return req, fmt.Errorf("%w: empty body", ErrInvalidMessage)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return req, nil
}

// HandleMessage — ошибки:
//   - ErrInvalidMessage / domain.ErrInvalidRequest — сообщение пропускается навсегда;
//   - остальное (хранилище аккаунтов, публикация продолжения) — повтор без коммита.
func (h *TriggerHandler) HandleMessage(ctx context.Context, raw []byte) error {
	req, err := DecodeTrigger(raw)
	if err != nil {
		return err
	}

	report, err := h.service.Run(ctx, req)
	if err != nil {
		return err
	}
	metrics.SyncRuns.WithLabelValues("kafka", strconv.FormatBool(report.Completed)).Inc()
	h.log.Infof(ctx, "trigger processed run_id=%s accounts=%d failed=%d completed=%t",
		report.RunID, report.AccountsProcessed, report.FailedAccounts(), report.Completed)

	next := report.Continuation(req)
	if next == nil || h.continuation == nil {
		return nil
	}
	if err := h.continuation.PublishTrigger(ctx, *next); err != nil {
		return fmt.Errorf("publish continuation start_date=%s: %w", next.StartDate, err)
	}
	h.log.Infof(ctx, "continuation queued start_date=%s", next.StartDate)
	return nil
}

// permanent — ошибка, при которой повтор бессмыслен.
func permanent(err error) bool {
	return errors.Is(err, ErrInvalidMessage) || errors.Is(err, domain.ErrInvalidRequest)
}
