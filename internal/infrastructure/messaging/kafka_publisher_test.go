package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/k-shtanenko/city-weather/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *sarama.Config {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	return cfg
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, testConfig())
	publisher := NewKafkaPublisherWithProducer(producer, "weather-records", nil)
	defer publisher.Close()

	record := &entities.WeatherRecord{ID: 42, City: "Lisbon", Temperature: 21.5}
	event := entities.NewWeatherEvent(entities.EventTypeCreated, record.ID, record)

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "weather-records" {
			return fmt.Errorf("unexpected topic %q", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "42" {
			return fmt.Errorf("unexpected key %q", key)
		}
		if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != string(entities.EventTypeCreated) {
			return errors.New("missing event-type header")
		}

		value, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var decoded entities.WeatherEvent
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded.ID != event.ID || decoded.City != "Lisbon" || decoded.Record == nil {
			return fmt.Errorf("unexpected payload %s", value)
		}
		return nil
	})

	require.NoError(t, publisher.Publish(context.Background(), event))
}

func TestKafkaPublisher_PublishDeleteHasNoRecord(t *testing.T) {
	producer := mocks.NewSyncProducer(t, testConfig())
	publisher := NewKafkaPublisherWithProducer(producer, "weather-records", nil)
	defer publisher.Close()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
		var decoded map[string]interface{}
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if _, ok := decoded["record"]; ok {
			return errors.New("delete event must not carry a record")
		}
		if decoded["type"] != string(entities.EventTypeDeleted) {
			return fmt.Errorf("unexpected type %v", decoded["type"])
		}
		return nil
	})

	event := entities.NewWeatherEvent(entities.EventTypeDeleted, 7, nil)
	require.NoError(t, publisher.Publish(context.Background(), event))
}

func TestKafkaPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, testConfig())
	publisher := NewKafkaPublisherWithProducer(producer, "weather-records", nil)
	defer publisher.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := publisher.Publish(context.Background(), entities.NewWeatherEvent(entities.EventTypeUpdated, 1, nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	assert.Contains(t, err.Error(), "failed to send weather.updated event")
}

func TestKafkaPublisher_CanceledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, testConfig())
	publisher := NewKafkaPublisherWithProducer(producer, "weather-records", nil)
	defer publisher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := publisher.Publish(ctx, entities.NewWeatherEvent(entities.EventTypeCreated, 1, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKafkaPublisher_NilProducer(t *testing.T) {
	publisher := &KafkaPublisher{topic: "weather-records"}

	assert.Error(t, publisher.Publish(context.Background(), entities.WeatherEvent{}))
	assert.NoError(t, publisher.Close())
}

func TestNopPublisher(t *testing.T) {
	var publisher NopPublisher

	assert.NoError(t, publisher.Publish(context.Background(), entities.WeatherEvent{}))
	assert.NoError(t, publisher.Close())
}
