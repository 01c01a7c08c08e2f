// Package kafka publishes search reports to a Kafka topic.
package kafka

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/quake-radius/internal/domain"
)

// Writer produces search reports to a Kafka topic.
// It implements search.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the report topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes the report and writes it synchronously, keyed by run ID.
func (w *Writer) Publish(ctx context.Context, report domain.SearchReport) error {
	out, err := domain.SerializeReport(report)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, toMessage(out)); err != nil {
		return err
	}
	w.logger.Debug("report published", "topic", w.writer.Topic, "run_id", report.RunID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage maps an output event onto a Kafka message with headers in sorted key order.
func toMessage(out domain.OutputEvent) kafkago.Message {
	msg := kafkago.Message{
		Key:   out.Key,
		Value: out.Value,
	}
	for _, key := range slices.Sorted(maps.Keys(out.Headers)) {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: key, Value: []byte(out.Headers[key])})
	}
	return msg
}
