// Copyright (c) 2026 Shopfront. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shopfront/internal/platform/audit"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestKafkaPublisher_Publish sends a JSON event keyed by session id.
*/
func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	defer func() { require.NoError(t, producer.Close()) }()

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(message *sarama.ProducerMessage) error {
		key, err := message.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "sid-1" {
			return errors.New("unexpected key " + string(key))
		}

		value, err := message.Value.Encode()
		if err != nil {
			return err
		}
		var event audit.Event
		if err := json.Unmarshal(value, &event); err != nil {
			return err
		}
		if event.Type != audit.EventLogout {
			return errors.New("unexpected type " + string(event.Type))
		}
		return nil
	})

	publisher := audit.NewKafkaPublisherWithProducer(producer, "session.audit", discardLogger())
	publisher.Publish(context.Background(), audit.Event{
		Type:      audit.EventLogout,
		SessionID: "sid-1",
		At:        time.Now(),
	})
}

/*
TestKafkaPublisher_PublishFailure swallows producer errors.
*/
func TestKafkaPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	defer func() { _ = producer.Close() }()

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := audit.NewKafkaPublisherWithProducer(producer, "session.audit", discardLogger())

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), audit.Event{Type: audit.EventLoginFailed, SessionID: "sid-2"})
	})
}

/*
TestNewSaramaConfig requires acknowledgement from all replicas.
*/
func TestNewSaramaConfig(t *testing.T) {
	config := audit.NewSaramaConfig()

	assert.Equal(t, sarama.WaitForAll, config.Producer.RequiredAcks)
	assert.True(t, config.Producer.Return.Successes)
}
