package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/launch-clearance/internal/config"
	"github.com/couchcryptid/launch-clearance/internal/domain"
)

// Writer publishes completed clearance decisions to a Kafka topic for
// downstream consumers (notification fan-out, dashboards). It implements
// decision.Publisher. The service itself never reads these back; decisions
// are not persisted here.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured decision topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaDecisionTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishDecision serializes and publishes one decision, keyed by site code
// so per-site ordering holds within a partition.
func (w *Writer) PublishDecision(ctx context.Context, d domain.Decision) error {
	msg, err := serializeToMessage(d)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Decision into a Kafka message.
func serializeToMessage(d domain.Decision) (kafkago.Message, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize decision: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(d.SiteCode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "verdict", Value: []byte(d.Verdict)},
			{Key: "decided_at", Value: []byte(d.DecidedAt.Format(time.RFC3339))},
		},
	}, nil
}
