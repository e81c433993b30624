package kafka_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	ikafka "github.com/Gunvolt24/wc_bronze_sync/internal/kafka"
	kafkago "github.com/segmentio/kafka-go"
)

func triggerConsumerConfig(startOffset string) ikafka.ConsumerConfig {
	return ikafka.ConsumerConfig{
		Brokers:     []string{"k1:9092", "k2:9092"},
		Topic:       "bronze-sync-triggers",
		GroupID:     "bronze-sync",
		StartOffset: startOffset,
	}
}

func TestConsumerConfig_ReaderConfig_StartOffset(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]int64{
		"first":      kafkago.FirstOffset,
		" FiRsT \n":  kafkago.FirstOffset,
		"\tFIRST\t":  kafkago.FirstOffset,
		"":           kafkago.LastOffset,
		"last":       kafkago.LastOffset,
		"earliest":   kafkago.LastOffset,
		"first-ever": kafkago.LastOffset,
	} {
		cfg := triggerConsumerConfig(raw)
		require.Equal(t, want, cfg.ReaderConfig().StartOffset, "start offset %q", raw)
	}
}

func TestConsumerConfig_ReaderConfig_Fields(t *testing.T) {
	t.Parallel()

	cfg := triggerConsumerConfig("last")
	rc := cfg.ReaderConfig()

	require.Equal(t, cfg.Brokers, rc.Brokers)
	require.Equal(t, "bronze-sync-triggers", rc.Topic)
	require.Equal(t, "bronze-sync", rc.GroupID)
	require.Zero(t, rc.CommitInterval, "offsets are committed manually")
	require.Positive(t, rc.MaxBytes)
}

func TestConsumerConfig_Validate(t *testing.T) {
	t.Parallel()

	ok := triggerConsumerConfig("")
	require.NoError(t, ok.Validate())

	bad := ikafka.ConsumerConfig{Topic: "  "}
	err := bad.Validate()
	require.True(t, errors.Is(err, ikafka.ErrConsumerConfig))
	require.Contains(t, err.Error(), "brokers, topic, group id")
}
