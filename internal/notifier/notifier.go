package notifier

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"pitstop/config"
	"pitstop/infras/kafka"
	"pitstop/infras/otel"
	providerModel "pitstop/internal/domains/provider/model"
	providerRepo "pitstop/internal/domains/provider/repository"
	userModel "pitstop/internal/domains/user/model"
	userRepo "pitstop/internal/domains/user/repository"
	"pitstop/internal/events"
	"pitstop/shared"
	"pitstop/shared/constant"
)

// Notifier consumes booking lifecycle events and notifies the customer and
// the provider. Notification failures are logged and dropped; they never
// affect the booking itself.
type Notifier struct {
	client       kafka.Client
	cfg          *config.Config
	sender       Sender
	userRepo     userRepo.User
	providerRepo providerRepo.Provider
	otel         otel.Otel
}

func New(
	client kafka.Client,
	cfg *config.Config,
	sender Sender,
	userRepo userRepo.User,
	providerRepo providerRepo.Provider,
	otel otel.Otel,
) *Notifier {
	return &Notifier{
		client:       client,
		cfg:          cfg,
		sender:       sender,
		userRepo:     userRepo,
		providerRepo: providerRepo,
		otel:         otel,
	}
}

// Run consumes both lifecycle topics until the context is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	go n.client.Consume(ctx, n.cfg.Kafka.ConsumerGroup, n.cfg.Kafka.Topics.BookingCreated, n.handleBookingCreated)

	n.client.Consume(ctx, n.cfg.Kafka.ConsumerGroup, n.cfg.Kafka.Topics.BookingStatusChanged, n.handleBookingStatusChanged)
}

func (n *Notifier) handleBookingCreated(msg kafkaGo.Message) {
	ctx, scope := n.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleBookingCreated")
	defer scope.End()

	decoded, err := kafka.DecodeKafkaMessage[events.BookingCreated](msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode booking created event")

		return
	}

	event, ok := decoded.Value.(events.BookingCreated)
	if !ok {
		log.Error().Msg("unexpected payload for booking created event")

		return
	}

	subject := "Booking received"
	body := fmt.Sprintf("Your booking for %s at %s is pending confirmation.", event.BookingDate, event.TimeSlot)

	n.notifyCustomer(ctx, event.CustomerID, subject, body)
	n.notifyProvider(ctx, event.ProviderID, "New booking request",
		fmt.Sprintf("A customer requested %s at %s.", event.BookingDate, event.TimeSlot))
}

func (n *Notifier) handleBookingStatusChanged(msg kafkaGo.Message) {
	ctx, scope := n.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleBookingStatusChanged")
	defer scope.End()

	decoded, err := kafka.DecodeKafkaMessage[events.BookingStatusChanged](msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode booking status changed event")

		return
	}

	event, ok := decoded.Value.(events.BookingStatusChanged)
	if !ok {
		log.Error().Msg("unexpected payload for booking status changed event")

		return
	}

	subject := fmt.Sprintf("Booking %s", event.NewStatus)
	body := fmt.Sprintf("Your booking for %s at %s is now %s.", event.BookingDate, event.TimeSlot, event.NewStatus)

	n.notifyCustomer(ctx, event.CustomerID, subject, body)
	n.notifyProvider(ctx, event.ProviderID, subject,
		fmt.Sprintf("The booking for %s at %s moved from %s to %s.", event.BookingDate, event.TimeSlot, event.OldStatus, event.NewStatus))
}

func (n *Notifier) notifyCustomer(ctx context.Context, customerID, subject, body string) {
	user, err := n.userRepo.Get(ctx, shared.FilterByID(customerID, userModel.FieldID, userModel.TableName))
	if err != nil || user.Email == constant.Empty {
		log.Error().Err(err).Str("customerID", customerID).Msg("failed to resolve customer for notification")

		return
	}

	n.send(ctx, user.Email, subject, body)
}

func (n *Notifier) notifyProvider(ctx context.Context, providerID, subject, body string) {
	provider, err := n.providerRepo.Get(ctx, shared.FilterByID(providerID, providerModel.FieldID, providerModel.TableName))
	if err != nil || provider.Email == constant.Empty {
		log.Error().Err(err).Str("providerID", providerID).Msg("failed to resolve provider for notification")

		return
	}

	n.send(ctx, provider.Email, subject, body)
}

func (n *Notifier) send(ctx context.Context, recipient, subject, body string) {
	if err := n.sender.Send(ctx, Notification{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}); err != nil {
		log.Error().Err(err).Str("recipient", recipient).Msg("failed to send notification")
	}
}
