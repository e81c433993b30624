package kafka

import (
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrConsumerConfig — не хватает брокеров, топика или группы.
var ErrConsumerConfig = errors.New("invalid kafka consumer config")

// ConsumerConfig — параметры чтения топика триггеров.
type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string // first|last (по умолчанию last)

	ProcessTimeout time.Duration // таймаут обработки одного триггера
	RetryInitial   time.Duration // начальная пауза backoff
	RetryMax       time.Duration // потолок backoff
}

// Validate — без группы нет коммитов, а значит и повторной доставки.
func (c *ConsumerConfig) Validate() error {
	var missing []string
	if len(c.Brokers) == 0 {
		missing = append(missing, "brokers")
	}
	if strings.TrimSpace(c.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(c.GroupID) == "" {
		missing = append(missing, "group id")
	}
	if len(missing) > 0 {
		return errors.Join(ErrConsumerConfig, errors.New("missing "+strings.Join(missing, ", ")))
	}
	return nil
}

// ReaderConfig — kafka.Reader с ручным коммитом. Триггеры маленькие и редкие:
// батч чтения ограничен, а долгий fetch не держит воркер дольше секунды.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		MaxWait:        time.Second,
		CommitInterval: 0,
		StartOffset:    kafka.LastOffset,
	}
	if strings.EqualFold(strings.TrimSpace(c.StartOffset), "first") {
		rc.StartOffset = kafka.FirstOffset
	}
	return rc
}
