package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"credentia/internal/events"
)

// producerClient is the slice of *kafka.Producer the publisher needs.
type producerClient interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Flush(timeoutMs int) int
	Close()
}

const deliveryTimeout = 10 * time.Second

// KafkaPublisher pushes transition notifications onto a single topic, keyed
// by event id. Each publish waits for its delivery report; the lifecycle
// transition has already committed by the time anything is produced, so a
// failed delivery surfaces as an error for the caller to log.
type KafkaPublisher struct {
	producer producerClient
	topic    string
}

func NewKafkaPublisher(brokers, topic string) (*KafkaPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": brokers})
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return &KafkaPublisher{producer: p, topic: topic}, nil
}

var _ events.Publisher = (*KafkaPublisher)(nil)

func (k *KafkaPublisher) Publish(ctx context.Context, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	// Buffered so the delivery report never blocks librdkafka; the channel
	// is left to the GC rather than closed, since a late report after a
	// timeout would otherwise panic.
	deliveryChan := make(chan kafka.Event, 1)

	if err := k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Key:            []byte(e.ID),
		Value:          payload,
	}, deliveryChan); err != nil {
		return err
	}

	select {
	case ev := <-deliveryChan:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %T", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("deliver %s: %w", e.Type, m.TopicPartition.Error)
		}
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(deliveryTimeout):
		return fmt.Errorf("timed out waiting for delivery report of %s", e.Type)
	}
	return nil
}

// Close flushes whatever is still queued before shutting the producer down.
func (k *KafkaPublisher) Close() {
	k.producer.Flush(5_000)
	k.producer.Close()
}
