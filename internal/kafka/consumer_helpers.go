package kafka

import (
	"context"
	"math/rand"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// verdict — что делать с оффсетом после обработки.
type verdict int

const (
	verdictCommit verdict = iota // успех или мусор: фиксируем оффсет
	verdictRetry                 // инфраструктурный сбой: повторяем то же сообщение
)

// process запускает обработчик с таймаутом и классифицирует результат.
func (c *Consumer) process(ctx context.Context, topic string, msg *kafka.Message) verdict {
	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	defer cancel()

	started := time.Now()
	err := c.handler.HandleMessage(ctxTimeout, msg.Value)
	if err == nil {
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		c.log.Infof(ctx, "trigger offset=%d handled in %s", msg.Offset, time.Since(started).Round(time.Millisecond))
		return verdictCommit
	}

	metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
	if permanent(err) {
		c.log.Warnf(ctx, "invalid trigger offset=%d: %v (skipped)", msg.Offset, err)
		return verdictCommit
	}
	c.log.Warnf(ctx, "trigger offset=%d failed: %v (will retry without commit)", msg.Offset, err)
	return verdictRetry
}

// commit фиксирует оффсет; ошибка коммита только логируется.
func (c *Consumer) commit(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

// backoff — экспоненциальная задержка с equal-jitter: половина фиксирована, половина случайна.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
	rnd     *rand.Rand
}

func newBackoff(initial, maxDelay time.Duration, seed int64) *backoff {
	return &backoff{
		initial: initial,
		max:     maxDelay,
		current: initial,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// next возвращает очередную задержку и удваивает базу (не выше max).
func (b *backoff) next() time.Duration {
	d := b.current
	b.current = min(b.current*2, b.max)
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(b.rnd.Int63n(int64(d-half)+1))
}

func (b *backoff) reset() { b.current = b.initial }

// wait спит d или возвращает false при отмене контекста.
func wait(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
