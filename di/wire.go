//go:build wireinject
// +build wireinject

package di

import (
	"pitstop/config"
	"pitstop/infras/jwt"
	"pitstop/infras/kafka"
	"pitstop/infras/otel"
	"pitstop/infras/postgres"
	"pitstop/infras/redis"
	"pitstop/internal/events"
	"pitstop/permissions"
	"pitstop/shared/cache"
	"pitstop/transport/http"
	"pitstop/transport/http/middleware"
	"pitstop/transport/http/router"

	availabilityService "pitstop/internal/domains/availability/service"
	bookingRepository "pitstop/internal/domains/booking/repository"
	bookingService "pitstop/internal/domains/booking/service"
	providerRepository "pitstop/internal/domains/provider/repository"
	providerService "pitstop/internal/domains/provider/service"
	availabilityHandler "pitstop/internal/handlers/availability"
	bookingHandler "pitstop/internal/handlers/booking"
	providerHandler "pitstop/internal/handlers/provider"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var eventing = wire.NewSet(
	events.NewKafkaDispatcher,
)

var providerDomain = wire.NewSet(
	providerRepository.New,
	providerRepository.NewOffering,
	providerService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityService.New,
)

var domains = wire.NewSet(
	providerDomain,
	bookingDomain,
	availabilityDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	availabilityHandler.New,
	bookingHandler.New,
	providerHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		eventing,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
