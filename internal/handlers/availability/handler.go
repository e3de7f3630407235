package availability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pitstop/infras/otel"
	"pitstop/internal/domains/availability/service"
	"pitstop/shared/constant"
	"pitstop/shared/failure"
	"pitstop/transport/http/response"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAvailability)
	})
}

// GetAvailability reports slot availability for a provider on a date.
// @Summary Get slot availability
// @Description Report the status of every catalog slot for a provider on a given date.
// @Tags Availability
// @Accept json
// @Produce json
// @Param provider_id query string true "Provider ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Slot statuses"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	providerID := r.URL.Query().Get(constant.RequestParamProviderID)
	date := r.URL.Query().Get(constant.RequestParamDate)

	if providerID == "" || date == "" {
		response.WithError(w, failure.BadRequestFromString("provider_id and date are required"))

		return
	}

	availability, err := handler.service.Get(ctx, providerID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}
