package kafka

import (
	"context"
	"encoding/json"

	"github.com/chris/ewallet-ledger/pkg/events"
	"github.com/segmentio/kafka-go"
)

// Topic carries one message per committed ledger operation.
const Topic = "ledger_operations"

// Publisher publishes committed-operation events to Kafka.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher writing to the given brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Make sure we conform to the interface
var _ events.Publisher = (*Publisher)(nil)

// Publish writes one event, keyed by account id so per-account ordering is
// preserved within a partition.
func (p *Publisher) Publish(ctx context.Context, event events.OperationCommitted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AccountId),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
