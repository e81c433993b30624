//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// SyncTopics — топики одного теста: триггеры, отчёты и группа консьюмера.
type SyncTopics struct {
	Trigger string
	Report  string
	Group   string
}

// UniqueSyncTopics — уникальные имена на основе префикса,
// например "bronze-itc-TestX-20250826T010203123456789-triggers".
func UniqueSyncTopics(base string) SyncTopics {
	stamp := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	prefix := base + "-" + stamp
	return SyncTopics{Trigger: prefix + "-triggers", Report: prefix + "-reports", Group: prefix}
}

// EnsureTopics — создаёт топики через контроллер кластера (существующие — не ошибка)
// и ждёт их появления в метаданных. broker — "host:port", "PLAINTEXT://host:port" или список через запятую.
func EnsureTopics(ctx context.Context, broker string, topics ...string) error {
	addr := bootstrapAddr(broker)

	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctrl, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("find controller: %w", err)
	}
	admin, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(ctrl.Host, strconv.Itoa(ctrl.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	configs := make([]kafka.TopicConfig, 0, len(topics))
	for _, t := range topics {
		configs = append(configs, kafka.TopicConfig{Topic: t, NumPartitions: 1, ReplicationFactor: 1})
	}
	if err := admin.CreateTopics(configs...); err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topics: %w", err)
	}

	for _, t := range topics {
		if err := waitTopic(ctx, addr, t); err != nil {
			return err
		}
	}
	return nil
}

func bootstrapAddr(raw string) string {
	first, _, _ := strings.Cut(raw, ",")
	first = strings.TrimSpace(first)
	if strings.Contains(first, "://") {
		if u, err := url.Parse(first); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return first
}

func waitTopic(ctx context.Context, broker, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			parts, perr := conn.ReadPartitions(topic)
			_ = conn.Close()
			if perr == nil && len(parts) > 0 {
				return nil
			}
			err = perr
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %q not ready: %w", topic, errors.Join(ctx.Err(), err))
		case <-ticker.C:
		}
	}
}
