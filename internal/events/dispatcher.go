package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"pitstop/config"
	"pitstop/infras/kafka"
	"pitstop/infras/otel"
	"pitstop/shared/constant"
)

type kafkaDispatcher struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

// NewKafkaDispatcher returns a Dispatcher publishing lifecycle events to the
// configured Kafka topics, keyed by booking id.
func NewKafkaDispatcher(client kafka.Client, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &kafkaDispatcher{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (d *kafkaDispatcher) BookingCreated(ctx context.Context, event BookingCreated) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingCreated")
	defer scope.End()
	defer scope.TraceIfError(err)

	topic := d.cfg.Kafka.Topics.BookingCreated

	err = d.client.SendMessages(ctx, topic, kafka.Message{
		Key:   event.BookingID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Str("bookingID", event.BookingID).Msg("failed to publish booking created event")

		return fmt.Errorf("failed to publish booking created event: %w", err)
	}

	return nil
}

func (d *kafkaDispatcher) BookingStatusChanged(ctx context.Context, event BookingStatusChanged) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingStatusChanged")
	defer scope.End()
	defer scope.TraceIfError(err)

	topic := d.cfg.Kafka.Topics.BookingStatusChanged

	err = d.client.SendMessages(ctx, topic, kafka.Message{
		Key:   event.BookingID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Str("bookingID", event.BookingID).Msg("failed to publish booking status changed event")

		return fmt.Errorf("failed to publish booking status changed event: %w", err)
	}

	return nil
}
