// Пакет window — расчёт диапазона дат (чанка) для одного запуска синхронизации.
// Чистые функции: результат зависит только от входа и переданного now.
package window

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/httpx"
)

const (
	Day = 24 * time.Hour

	DefaultBackfillDays = 1
	DefaultChunkDays    = 14
	MaxBackfillDays     = 365
	MaxChunkDays        = 30
)

// Params — вход планировщика.
type Params struct {
	BackfillDays int
	ChunkDays    int
	StartDate    *time.Time // курсор продолжения; nil — свежий бэкфилл
}

// Window — диапазон текущего чанка и курсор продолжения.
type Window struct {
	TargetStart   time.Time
	ChunkStart    time.Time
	ChunkEnd      time.Time
	Now           time.Time
	IsLastChunk   bool
	NextStartDate *time.Time
	BackfillDays  int
	ChunkDays     int
}

// Normalize — дефолты и границы: backfill [1..365], chunk [1..30]; 0 → дефолт.
func (p Params) Normalize() Params {
	if p.BackfillDays == 0 {
		p.BackfillDays = DefaultBackfillDays
	}
	if p.ChunkDays == 0 {
		p.ChunkDays = DefaultChunkDays
	}
	p.BackfillDays = httpx.ClampInt(p.BackfillDays, 1, MaxBackfillDays)
	p.ChunkDays = httpx.ClampInt(p.ChunkDays, 1, MaxChunkDays)
	return p
}

// Plan — окно для этого запуска.
// targetStart = now - backfill; chunkStart = start_date ?? targetStart;
// chunkEnd = min(chunkStart + chunk, now); последний чанк, если chunkEnd >= now.
// start_date в будущем не даёт перевёрнутого окна: чанк схлопывается в now.
func Plan(now time.Time, p Params) Window {
	p = p.Normalize()
	now = now.UTC()

	targetStart := now.Add(-time.Duration(p.BackfillDays) * Day)
	chunkStart := targetStart
	if p.StartDate != nil {
		chunkStart = p.StartDate.UTC()
	}
	if chunkStart.After(now) {
		chunkStart = now
	}

	chunkEnd := chunkStart.Add(time.Duration(p.ChunkDays) * Day)
	if chunkEnd.After(now) {
		chunkEnd = now
	}

	w := Window{
		TargetStart:  targetStart,
		ChunkStart:   chunkStart,
		ChunkEnd:     chunkEnd,
		Now:          now,
		IsLastChunk:  !chunkEnd.Before(now),
		BackfillDays: p.BackfillDays,
		ChunkDays:    p.ChunkDays,
	}
	if !w.IsLastChunk {
		next := chunkEnd
		w.NextStartDate = &next
	}
	return w
}

// Progress — прогресс для отчёта.
func (w Window) Progress() domain.Progress {
	processed := ceilDays(w.ChunkEnd.Sub(w.TargetStart))
	if processed < 0 {
		processed = 0
	}
	if processed > w.BackfillDays {
		processed = w.BackfillDays
	}
	return domain.Progress{
		ChunkStart:    w.ChunkStart,
		ChunkEnd:      w.ChunkEnd,
		DaysInChunk:   ceilDays(w.ChunkEnd.Sub(w.ChunkStart)),
		ProcessedDays: processed,
		TotalDays:     w.BackfillDays,
	}
}

// ceilDays — длительность в днях с округлением вверх.
func ceilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(Day)))
}

// ParseStartDate — "2006-01-02" (полночь UTC) или RFC3339; пустая строка → nil.
func ParseStartDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		ts = ts.UTC()
		return &ts, nil
	}
	ts, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date %q must be YYYY-MM-DD or RFC3339", domain.ErrInvalidRequest, raw)
	}
	return &ts, nil
}

// FromRequest — параметры планировщика из тела триггера.
func FromRequest(req domain.SyncRequest) (Params, error) {
	start, err := ParseStartDate(req.StartDate)
	if err != nil {
		return Params{}, err
	}
	return Params{BackfillDays: req.BackfillDays, ChunkDays: req.ChunkDays, StartDate: start}, nil
}
