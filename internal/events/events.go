package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
)

// BookingCreated is emitted after a booking has been persisted.
type BookingCreated struct {
	BookingID   string  `json:"booking_id"`
	CustomerID  string  `json:"customer_id"`
	ProviderID  string  `json:"provider_id"`
	BookingDate string  `json:"booking_date"`
	TimeSlot    string  `json:"time_slot"`
	TotalPrice  float64 `json:"total_price"`
}

// BookingStatusChanged is emitted after a booking status transition has been
// persisted, carrying both sides of the transition.
type BookingStatusChanged struct {
	BookingID   string `json:"booking_id"`
	CustomerID  string `json:"customer_id"`
	ProviderID  string `json:"provider_id"`
	BookingDate string `json:"booking_date"`
	TimeSlot    string `json:"time_slot"`
	OldStatus   string `json:"old_status"`
	NewStatus   string `json:"new_status"`
	ChangedBy   string `json:"changed_by"`
}

// Dispatcher publishes booking lifecycle events for out-of-band consumers.
// Publishing is best effort: implementations report errors so callers can log
// them, but a dispatch failure must never fail or roll back the booking
// operation that produced the event.
type Dispatcher interface {
	BookingCreated(ctx context.Context, event BookingCreated) error
	BookingStatusChanged(ctx context.Context, event BookingStatusChanged) error
}
