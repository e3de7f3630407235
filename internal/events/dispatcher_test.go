package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"pitstop/config"
	"pitstop/infras/kafka"
	kafkaMocks "pitstop/infras/kafka/mocks"
	"pitstop/infras/otel/mocks"
	"pitstop/internal/events"
)

func newDispatcher(t *testing.T) (events.Dispatcher, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingCreated = "pitstop.booking.created"
	cfg.Kafka.Topics.BookingStatusChanged = "pitstop.booking.status-changed"

	return events.NewKafkaDispatcher(client, cfg, mocks.NewOtel()), client
}

func TestKafkaDispatcher_BookingCreated(t *testing.T) {
	t.Run("publishes to the created topic keyed by booking id", func(t *testing.T) {
		dispatcher, client := newDispatcher(t)

		event := events.BookingCreated{
			BookingID:   "b1",
			CustomerID:  "u1",
			ProviderID:  "p1",
			BookingDate: "2026-09-15",
			TimeSlot:    "09:00 AM",
			TotalPrice:  74.99,
		}

		client.EXPECT().
			SendMessages(gomock.Any(), "pitstop.booking.created", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				assert.Len(t, messages, 1)
				assert.Equal(t, "b1", messages[0].Key)
				assert.Equal(t, event, messages[0].Value)

				return nil
			})

		err := dispatcher.BookingCreated(context.Background(), event)

		assert.NoError(t, err)
	})

	t.Run("propagates publish failures", func(t *testing.T) {
		dispatcher, client := newDispatcher(t)

		client.EXPECT().
			SendMessages(gomock.Any(), "pitstop.booking.created", gomock.Any()).
			Return(errors.New("broker unavailable"))

		err := dispatcher.BookingCreated(context.Background(), events.BookingCreated{BookingID: "b1"})

		assert.Error(t, err)
	})
}

func TestKafkaDispatcher_BookingStatusChanged(t *testing.T) {
	dispatcher, client := newDispatcher(t)

	event := events.BookingStatusChanged{
		BookingID:  "b1",
		CustomerID: "u1",
		ProviderID: "p1",
		OldStatus:  "pending",
		NewStatus:  "confirmed",
		ChangedBy:  "owner-1",
	}

	client.EXPECT().
		SendMessages(gomock.Any(), "pitstop.booking.status-changed", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			assert.Len(t, messages, 1)
			assert.Equal(t, "b1", messages[0].Key)
			assert.Equal(t, event, messages[0].Value)

			return nil
		})

	err := dispatcher.BookingStatusChanged(context.Background(), event)

	assert.NoError(t, err)
}
