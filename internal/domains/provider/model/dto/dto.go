package dto

import (
	"pitstop/internal/domains/provider/model"
	"pitstop/shared"
	gDto "pitstop/shared/dto"
)

type ProviderResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	SlotCatalog []string `json:"slot_catalog,omitempty"`
	Active      bool     `json:"active"`
	gDto.Metadata
}

func (r *ProviderResponse) FromModel(mod model.Provider) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.SlotCatalog = mod.SlotCatalog
	r.Active = mod.Active
	r.Metadata.FromModel(mod.Metadata)
}

type GetProvidersResponse struct {
	Providers []ProviderResponse `json:"providers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetProvidersResponse) FromModels(models []model.Provider, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Providers = make([]ProviderResponse, len(models))
	for i, mod := range models {
		r.Providers[i].FromModel(mod)
	}
}

type OfferingResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}

func (r *OfferingResponse) FromModel(mod model.Offering) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Price = mod.Price
	r.DurationMinutes = mod.DurationMinutes
}

type GetOfferingsResponse struct {
	Services []OfferingResponse `json:"services"`
}

func (r *GetOfferingsResponse) FromModels(models []model.Offering) {
	r.Services = make([]OfferingResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
