package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.TriggerConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler — обработка одного триггера (см. TriggerHandler).
type messageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) error
}

// Consumer — обёртка над kafka.Reader + обработчик триггеров.
type Consumer struct {
	reader         reader
	handler        messageHandler
	log            ports.Logger
	processTimeout time.Duration
	retry          *backoff
	closeOnce      sync.Once
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, handler messageHandler, log ports.Logger) *Consumer {
	reader := kafka.NewReader(cfg.ReaderConfig())

	// Параметры по умолчанию (если не заданы в конфиге)
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 10 * time.Minute
	}

	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 1 * time.Second
	}

	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Consumer{
		reader:         reader,
		handler:        handler,
		log:            log,
		processTimeout: pt,
		// Сид от времени рассинхронизирует повторы нескольких инстансов.
		retry: newBackoff(rInit, rMax, time.Now().UnixNano()),
	}
}

// Run — основной цикл:
// 1) читаем триггер без авто-коммита;
// 2) успешный запуск → CommitMessages;
// 3) мусор или некорректный запрос → лог и CommitMessages (пропускаем навсегда);
// 4) инфраструктурная ошибка → без коммита, повтор того же сообщения с растущим backoff (at-least-once).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	// Backoff общий для ошибок чтения и обработки.
	c.retry.reset()

	for {
		// Читаем сообщение (без автокоммита)
		msg, fetchErr := c.reader.FetchMessage(ctx)
		if fetchErr != nil {
			// Если контекст отменен -> выходим
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Иначе - временная ошибка брокера/сети. Ожидаем и повторяем
			sleep := c.retry.next()
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", fetchErr, sleep)
			if !wait(ctx, sleep) {
				return ctx.Err()
			}
			continue
		}

		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		// Временная ошибка — повторяем то же сообщение с backoff, пока не выйдет или не отменят контекст:
		// reader группы не перечитывает незакоммиченное сообщение до ребаланса.
		for c.process(ctx, rc.Topic, &msg) == verdictRetry {
			if !wait(ctx, c.retry.next()) {
				return ctx.Err()
			}
		}
		c.retry.reset()
		c.commit(ctx, &msg)
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
