package provider

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pitstop/infras/otel"
	"pitstop/internal/domains/provider/model"
	"pitstop/internal/domains/provider/service"
	"pitstop/shared"
	"pitstop/shared/constant"
	gDto "pitstop/shared/dto"
	"pitstop/transport/http/response"
)

type Handler struct {
	service service.Provider
	otel    otel.Otel
}

func New(service service.Provider, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/providers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetProviders)
		routerGroup.Get("/{id}", handler.GetProviderByID)
		routerGroup.Get("/{id}/services", handler.GetProviderServices)
	})
}

// GetProviders retrieves all active providers.
// @Summary Get all providers
// @Description Retrieve all active providers with optional filtering and pagination.
// @Tags Provider
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (partial match)"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetProvidersResponse] "List of providers"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/providers [get]
func (handler *Handler) GetProviders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProviders")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	providers, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get providers")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Providers retrieved successfully")

	response.WithJSON(w, http.StatusOK, providers)
}

// GetProviderByID retrieves a provider by its ID.
// @Summary Get a provider by ID
// @Description Retrieve a provider by its unique identifier.
// @Tags Provider
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.Data[dto.ProviderResponse] "Provider details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/providers/{id} [get]
func (handler *Handler) GetProviderByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProviderByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	provider, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get provider by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Provider retrieved successfully")

	response.WithJSON(w, http.StatusOK, provider)
}

// GetProviderServices retrieves the active service catalog of a provider.
// @Summary Get a provider's services
// @Description Retrieve the active services a provider offers.
// @Tags Provider
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.Data[dto.GetOfferingsResponse] "List of services"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/providers/{id}/services [get]
func (handler *Handler) GetProviderServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProviderServices")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	services, err := handler.service.Offerings(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get provider services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Provider services retrieved successfully")

	response.WithJSON(w, http.StatusOK, services)
}
