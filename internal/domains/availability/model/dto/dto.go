package dto

const (
	SlotStatusFree   = "free"
	SlotStatusBooked = "booked"
)

type SlotStatusResponse struct {
	TimeSlot string `json:"time_slot"`
	IsBooked bool   `json:"is_booked"`
	Status   string `json:"status"`
}

type AvailabilityResponse struct {
	ProviderID string               `json:"provider_id"`
	Date       string               `json:"date"`
	Slots      []SlotStatusResponse `json:"slots"`
}
