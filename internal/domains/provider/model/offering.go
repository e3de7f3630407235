package model

import (
	"pitstop/shared/model"
)

const (
	OfferingTableName  = "provider_services"
	OfferingEntityName = "provider_service"

	FieldOfferingID              = "id"
	FieldOfferingProviderID      = "provider_id"
	FieldOfferingName            = "name"
	FieldOfferingPrice           = "price"
	FieldOfferingDurationMinutes = "duration_minutes"
	FieldOfferingActive          = "active"
)

// Offering is one entry of a provider's service catalog with its current
// price. Bookings snapshot offerings at creation time, so price changes here
// never alter historical bookings.
type Offering struct {
	ID              string  `db:"id"`
	ProviderID      string  `db:"provider_id"`
	Name            string  `db:"name"`
	Price           float64 `db:"price"`
	DurationMinutes int     `db:"duration_minutes"`
	Active          bool    `db:"active"`
	model.Metadata
}
