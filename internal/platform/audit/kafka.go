// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
)

// KafkaPublisher produces audit events to a Kafka topic.
//
// Messages are keyed by session id so that all events of one browser session
// land on the same partition, in order.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewSaramaConfig returns the producer configuration used for the audit stream.
func NewSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0

	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Partitioner = sarama.NewHashPartitioner

	return config
}

// NewKafkaPublisher dials the brokers and returns a ready publisher.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("audit: failed to create kafka producer: %w", err)
	}

	return NewKafkaPublisherWithProducer(producer, topic, logger), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish implements [Publisher]. Failures are logged and swallowed.
func (publisher *KafkaPublisher) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		publisher.logger.ErrorContext(ctx, "audit_event_encode_failed", slog.Any("error", err))
		return
	}

	message := &sarama.ProducerMessage{
		Topic: publisher.topic,
		Key:   sarama.StringEncoder(event.SessionID),
		Value: sarama.ByteEncoder(payload),
	}

	partition, offset, err := publisher.producer.SendMessage(message)
	if err != nil {
		publisher.logger.ErrorContext(ctx, "audit_event_publish_failed",
			slog.String("type", string(event.Type)),
			slog.Any("error", err),
		)
		return
	}

	publisher.logger.DebugContext(ctx, "audit_event_published",
		slog.String("type", string(event.Type)),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
	)
}

// Close flushes and closes the underlying producer.
func (publisher *KafkaPublisher) Close() error {
	return publisher.producer.Close()
}
