package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pitstop/shared/constant"
	"pitstop/shared/model"
)

const (
	TableName  = "service_bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldCustomerID     = "customer_id"
	FieldProviderID     = "provider_id"
	FieldProviderUserID = "provider_user_id"
	FieldServices       = "services"
	FieldBookingDate    = "booking_date"
	FieldTimeSlot       = "time_slot"
	FieldTotalPrice     = "total_price"
	FieldStatus         = "status"
)

// ServiceLine is one service snapshotted into a booking at creation time.
// Later catalog price changes never alter these values.
type ServiceLine struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

// ServiceLines is the ordered service snapshot, stored as jsonb.
type ServiceLines []ServiceLine

func (l ServiceLines) Value() (driver.Value, error) {
	value, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal service lines: %w", err)
	}

	return value, nil
}

func (l *ServiceLines) Scan(src any) error {
	if src == nil {
		*l = nil

		return nil
	}

	var raw []byte

	switch value := src.(type) {
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return errors.New("unsupported source type for service lines")
	}

	if err := json.Unmarshal(raw, l); err != nil {
		return fmt.Errorf("failed to unmarshal service lines: %w", err)
	}

	return nil
}

// Total sums the snapshotted line prices.
func (l ServiceLines) Total() float64 {
	total := 0.0
	for _, line := range l {
		total += line.Price
	}

	return total
}

type Booking struct {
	ID             string       `db:"id"`
	CustomerID     string       `db:"customer_id"`
	ProviderID     string       `db:"provider_id"`
	ProviderUserID string       `db:"provider_user_id"`
	Services       ServiceLines `db:"services"`
	BookingDate    time.Time    `db:"booking_date"`
	TimeSlot       string       `db:"time_slot"`
	TotalPrice     float64      `db:"total_price"`
	Status         Status       `db:"status"`
	model.Metadata
}

// AccessibleBy reports whether the given actor may see this booking: its
// customer, the provider's owner account, or an administrator.
func (b *Booking) AccessibleBy(userID, role string) bool {
	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		return true
	}

	return b.CustomerID == userID || b.ProviderUserID == userID
}

// TransitionAllowedFor reports whether the given actor may apply the given
// transition. Confirmation and completion are provider or admin actions;
// cancellation is open to the customer as well.
func (b *Booking) TransitionAllowedFor(next Status, userID, role string) bool {
	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		return true
	}

	switch next {
	case StatusConfirmed, StatusCompleted:
		return b.ProviderUserID == userID
	case StatusCancelled:
		return b.CustomerID == userID || b.ProviderUserID == userID
	default:
		return false
	}
}
