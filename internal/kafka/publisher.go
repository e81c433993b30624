package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/wc_bronze_sync/internal/domain"
	"github.com/Gunvolt24/wc_bronze_sync/internal/ports"
	"github.com/Gunvolt24/wc_bronze_sync/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var (
	_ ports.ReportPublisher  = (*Publisher)(nil)
	_ ports.TriggerPublisher = (*Publisher)(nil)
)

// ErrNoTriggerTopic — продолжение некуда публиковать.
var ErrNoTriggerTopic = errors.New("trigger topic is not configured")

// writer — минимальный контракт над kafka.Writer.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublisherConfig — топики отчётов и триггеров.
type PublisherConfig struct {
	Brokers      []string
	ReportTopic  string
	TriggerTopic string
}

// ReportMessage — тело сообщения в топике отчётов.
type ReportMessage struct {
	Request     domain.SyncRequest `json:"request"`
	Report      *domain.SyncReport `json:"report"`
	PublishedAt time.Time          `json:"published_at"`
}

// Publisher — отчёты запусков (ключ — run_id) и триггеры продолжения.
type Publisher struct {
	reports      writer
	triggers     writer
	reportTopic  string
	triggerTopic string
	closeOnce    sync.Once
}

// NewPublisher — пустой топик отключает соответствующий поток.
func NewPublisher(cfg PublisherConfig) *Publisher {
	p := &Publisher{reportTopic: cfg.ReportTopic, triggerTopic: cfg.TriggerTopic}
	if cfg.ReportTopic != "" {
		p.reports = newWriter(cfg.Brokers, cfg.ReportTopic)
	}
	if cfg.TriggerTopic != "" {
		p.triggers = newWriter(cfg.Brokers, cfg.TriggerTopic)
	}
	return p
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// Publish — отчёт запуска в топик отчётов.
func (p *Publisher) Publish(ctx context.Context, req domain.SyncRequest, report *domain.SyncReport) error {
	if p.reports == nil || report == nil {
		return nil
	}
	value, err := json.Marshal(ReportMessage{Request: req, Report: report, PublishedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return p.write(ctx, p.reports, p.reportTopic, kafka.Message{Key: []byte(report.RunID), Value: value})
}

// PublishTrigger — триггер следующего чанка; ключ — account_id (пустой для всех аккаунтов).
func (p *Publisher) PublishTrigger(ctx context.Context, req domain.SyncRequest) error {
	if p.triggers == nil {
		return ErrNoTriggerTopic
	}
	value, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal trigger: %w", err)
	}
	return p.write(ctx, p.triggers, p.triggerTopic, kafka.Message{Key: []byte(req.AccountID), Value: value})
}

func (p *Publisher) write(ctx context.Context, w writer, topic string, msg kafka.Message) error {
	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", topic, err)
	}
	metrics.KafkaMessagesPublished.WithLabelValues(topic).Inc()
	return nil
}

// Close — закрывает писателей.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		for _, w := range []writer{p.reports, p.triggers} {
			if w == nil {
				continue
			}
			if err := w.Close(); err != nil && retErr == nil {
				retErr = err
			}
		}
	})
	return retErr
}
