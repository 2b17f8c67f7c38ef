package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConfig() *sarama.Config {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	return cfg
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mockConfig())
	pub := NewKafkaPublisherWithProducer(producer, "booking-events")

	tourist := uuid.New()
	listing := uuid.New()
	event := NewEventBuilder(EventBookingCancelled).
		WithTourist(tourist).
		WithSubject(listing, "ACTIVITY").
		WithAmount("100.00", "100.00").
		Build()

	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got DomainEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.Type != EventBookingCancelled || got.TouristID != tourist || got.SubjectID != listing {
			return errors.New("unexpected event body")
		}
		return nil
	})

	require.NoError(t, pub.Publish(context.Background(), event))
	require.NoError(t, pub.Close())
}

func TestKafkaPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mockConfig())
	pub := NewKafkaPublisherWithProducer(producer, "booking-events")

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := pub.Publish(context.Background(), NewEventBuilder(EventOrderCancelled).WithTourist(uuid.New()).Build())
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, pub.Close())
}

func TestDomainEvent_PartitionKey(t *testing.T) {
	tourist := uuid.New()
	event := NewEventBuilder(EventBookingCreated).WithTourist(tourist).WithBookedDate("2026-05-01").Build()

	assert.Equal(t, tourist.String(), event.PartitionKey())
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), &DomainEvent{}))
	assert.NoError(t, p.Close())
}
