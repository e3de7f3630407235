package router

import (
	"github.com/go-chi/chi/v5"

	"pitstop/internal/handlers/availability"
	"pitstop/internal/handlers/booking"
	"pitstop/internal/handlers/provider"
)

type DomainHandlers struct {
	Availability availability.Handler
	Booking      booking.Handler
	Provider     provider.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Provider.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
