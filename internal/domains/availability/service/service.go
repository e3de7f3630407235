package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"pitstop/config"
	"pitstop/infras/otel"
	"pitstop/internal/domains/availability/model/dto"
	bookingModel "pitstop/internal/domains/booking/model"
	bookingRepo "pitstop/internal/domains/booking/repository"
	providerModel "pitstop/internal/domains/provider/model"
	providerRepo "pitstop/internal/domains/provider/repository"
	"pitstop/shared"
	"pitstop/shared/cache"
	"pitstop/shared/constant"
	gDto "pitstop/shared/dto"
	"pitstop/shared/failure"
	"pitstop/shared/timezone"
)

const cacheAvailability = "availability"

type Availability interface {
	Get(ctx context.Context, providerID, date string) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	providerRepo providerRepo.Provider
	bookingRepo  bookingRepo.Booking
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	providerRepo providerRepo.Provider,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		providerRepo: providerRepo,
		bookingRepo:  bookingRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Get reports the status of every slot in the provider's catalog for a date.
// A slot counts as booked while a pending or confirmed booking holds it;
// cancelled and completed bookings release it.
func (s *serviceImpl) Get(ctx context.Context, providerID, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = timezone.Parse(constant.BookingDateFormat, date); err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date: %v", err)) // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability, providerID, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	provider, err := s.providerRepo.Get(ctx, shared.FilterByID(providerID, providerModel.FieldID, providerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get provider")

		return res, fmt.Errorf("failed to get provider: %w", err)
	}

	if provider.ID == constant.Empty || !provider.Active {
		return res, failure.NotFound("provider not found") // nolint:wrapcheck
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, activeBookingsFilter(providerID, date), bookingModel.FieldTimeSlot)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	booked := make(map[string]bool, len(bookings))
	for _, booking := range bookings {
		booked[booking.TimeSlot] = true
	}

	catalog := provider.Catalog(s.cfg.Booking.Slots)

	res.ProviderID = provider.ID
	res.Date = date
	res.Slots = make([]dto.SlotStatusResponse, len(catalog))

	for i, slot := range catalog {
		status := dto.SlotStatusFree
		if booked[slot] {
			status = dto.SlotStatusBooked
		}

		res.Slots[i] = dto.SlotStatusResponse{
			TimeSlot: slot,
			IsBooked: booked[slot],
			Status:   status,
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

func activeBookingsFilter(providerID, date string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldProviderID,
				Operator: gDto.FilterOperatorEq,
				Value:    providerID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				ArgName:  "active_status",
				Value:    bookingModel.NonTerminalStatuses(),
				Table:    bookingModel.TableName,
			},
		},
	}
}
