package dto

import (
	"pitstop/internal/domains/booking/model"
	"pitstop/shared"
	"pitstop/shared/constant"
	gDto "pitstop/shared/dto"
)

type CreateBookingRequest struct {
	ProviderID  string   `json:"provider_id"  validate:"required,uuid4"`
	Services    []string `json:"services"     validate:"required,min=1,dive,required"`
	BookingDate string   `json:"booking_date" validate:"required"`
	TimeSlot    string   `json:"time_slot"    validate:"required"`
	// TotalPrice is advisory: the server recomputes the total from the
	// provider's catalog and rejects a mismatch instead of trusting it.
	TotalPrice *float64 `json:"total_price"  validate:"omitempty,gte=0"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type ServiceLineResponse struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

type BookingResponse struct {
	ID          string                `json:"id"`
	CustomerID  string                `json:"customer_id"`
	ProviderID  string                `json:"provider_id"`
	Services    []ServiceLineResponse `json:"services"`
	BookingDate string                `json:"booking_date"`
	TimeSlot    string                `json:"time_slot"`
	TotalPrice  float64               `json:"total_price"`
	Status      string                `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.CustomerID = mod.CustomerID
	r.ProviderID = mod.ProviderID
	r.BookingDate = mod.BookingDate.Format(constant.BookingDateFormat)
	r.TimeSlot = mod.TimeSlot
	r.TotalPrice = mod.TotalPrice
	r.Status = string(mod.Status)
	r.Metadata.FromModel(mod.Metadata)

	r.Services = make([]ServiceLineResponse, len(mod.Services))
	for i, line := range mod.Services {
		r.Services[i] = ServiceLineResponse{
			Name:            line.Name,
			Price:           line.Price,
			DurationMinutes: line.DurationMinutes,
		}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
