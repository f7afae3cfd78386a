// Package kafka publishes chart snapshots for downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/tricountyrescue/rescue-dashboard/internal/config"
	"github.com/tricountyrescue/rescue-dashboard/internal/dashboard"
)

// Writer produces snapshot messages to a Kafka topic.
// It implements dashboard.SnapshotPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured snapshot topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSnapshotTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSnapshots serializes and publishes refreshed snapshots to the
// snapshot topic in a single WriteMessages call.
func (w *Writer) PublishSnapshots(ctx context.Context, snaps []dashboard.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snaps))
	for i := range snaps {
		msg, err := serializeToMessage(snaps[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Snapshot into a Kafka message keyed by chart
// name, so consumers compacting the topic keep the latest snapshot per chart.
func serializeToMessage(snap dashboard.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(snap.Chart.Title),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "chart", Value: []byte(snap.Chart.Title)},
			{Key: "refreshed_at", Value: []byte(snap.RefreshedAt.Format(time.RFC3339))},
		},
	}, nil
}
