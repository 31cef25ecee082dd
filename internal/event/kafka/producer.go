// Package kafka publishes rating events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/mediarate/mediarate/pkg/model"
	"go.uber.org/zap"
)

// Producer publishes rating events to a Kafka topic.
type Producer struct {
	producer *kafka.Producer
	topic    string
	logger   *zap.Logger
}

// NewProducer connects to the given brokers and watches delivery
// reports in the background, logging failed deliveries.
func NewProducer(brokers, topic string, logger *zap.Logger) (*Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{"bootstrap.servers": brokers})
	if err != nil {
		return nil, err
	}
	go func() {
		for e := range p.Events() {
			if msg, ok := e.(*kafka.Message); ok && msg.TopicPartition.Error != nil {
				logger.Warn("Rating event delivery failed",
					zap.Error(msg.TopicPartition.Error))
			}
		}
	}()
	return &Producer{producer: p, topic: topic, logger: logger}, nil
}

// Publish enqueues one rating event.
func (p *Producer) Publish(ctx context.Context, e model.RatingEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Value:          payload,
	}, nil)
}

// Close flushes outstanding events and releases the producer.
func (p *Producer) Close() {
	if remaining := p.producer.Flush(10_000); remaining != 0 {
		p.logger.Warn("Rating events not delivered before shutdown",
			zap.Int("remaining", remaining))
	}
	p.producer.Close()
}
