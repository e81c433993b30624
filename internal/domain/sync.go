package domain

import "time"

// SyncState — итог прогона аккаунта (success|error).
type SyncState string

const (
	SyncStateSuccess SyncState = "success"
	SyncStateError   SyncState = "error"
)

// SyncStatus — последний результат синхронизации аккаунта.
// Пишется в конце каждого прогона (в том числе при нуле заказов); движок его не читает.
type SyncStatus struct {
	TenantID            string    `json:"tenant_id"`
	LastSyncAt          time.Time `json:"last_sync_at"`
	LastSyncStatus      SyncState `json:"last_sync_status"`
	LastSyncOrdersCount int       `json:"last_sync_orders_count"`
	LastErrorMessage    string    `json:"last_error_message,omitempty"`
}

// SyncResult — неизменяемый итог прогона одного аккаунта (элемент results[]).
type SyncResult struct {
	TenantID             string    `json:"-"`
	Account              string    `json:"account"`
	Status               SyncState `json:"status"`
	Orders               int       `json:"orders"`
	OrderRows            int       `json:"order_rows"`
	Products             int       `json:"products"`
	ProductRows          int       `json:"product_rows"`
	FailedProductBatches int       `json:"failed_product_batches,omitempty"`
	Error                string    `json:"error,omitempty"`
	DurationMS           int64     `json:"duration_ms"`
}

// SyncRequest — параметры запуска (тело триггера). Все поля необязательны.
type SyncRequest struct {
	BackfillDays int    `json:"backfill_days,omitempty"`
	ChunkDays    int    `json:"chunk_days,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	AccountID    string `json:"account_id,omitempty"`
}

// Progress — прогресс бэкфилла для текущего чанка.
type Progress struct {
	ChunkStart    time.Time `json:"chunk_start"`
	ChunkEnd      time.Time `json:"chunk_end"`
	DaysInChunk   int       `json:"days_in_chunk"`
	ProcessedDays int       `json:"processed_days"`
	TotalDays     int       `json:"total_days"`
}

// SyncReport — ответ на запуск синхронизации.
type SyncReport struct {
	RunID             string       `json:"run_id"`
	Message           string       `json:"message"`
	DurationMS        int64        `json:"duration_ms"`
	AccountsProcessed int          `json:"accounts_processed"`
	Results           []SyncResult `json:"results"`
	Completed         bool         `json:"completed"`
	NextStartDate     *time.Time   `json:"next_start_date"`
	Progress          Progress     `json:"progress"`
}

// Continuation — запрос на следующий чанк (nil, если бэкфилл завершён).
func (r *SyncReport) Continuation(prev SyncRequest) *SyncRequest {
	if r.Completed || r.NextStartDate == nil {
		return nil
	}
	next := prev
	next.StartDate = r.NextStartDate.UTC().Format(time.RFC3339)
	return &next
}

// FailedAccounts — число аккаунтов со статусом error.
func (r *SyncReport) FailedAccounts() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Status == SyncStateError {
			n++
		}
	}
	return n
}
