package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./sender.go -destination=./mocks/sender_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"
)

type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// Sender delivers a notification to a recipient. Delivery is best effort; a
// failed send is logged by the caller and never retried against the booking.
type Sender interface {
	Send(ctx context.Context, notification Notification) error
}

type logSender struct{}

// NewLogSender returns a Sender that writes notifications to the log. It is
// the default delivery channel; real channels (email, SMS) plug in behind the
// same interface.
func NewLogSender() Sender {
	return &logSender{}
}

func (s *logSender) Send(_ context.Context, notification Notification) error {
	log.Info().
		Str("recipient", notification.Recipient).
		Str("subject", notification.Subject).
		Str("body", notification.Body).
		Msg("notification delivered")

	return nil
}
