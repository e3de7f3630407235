package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pitstop/config"
	"pitstop/infras/otel"
	"pitstop/internal/domains/booking/model"
	"pitstop/internal/domains/booking/model/dto"
	"pitstop/internal/domains/booking/repository"
	providerModel "pitstop/internal/domains/provider/model"
	providerRepo "pitstop/internal/domains/provider/repository"
	"pitstop/internal/events"
	"pitstop/shared"
	"pitstop/shared/cache"
	"pitstop/shared/constant"
	gDto "pitstop/shared/dto"
	"pitstop/shared/failure"
	gModel "pitstop/shared/model"
	"pitstop/shared/timezone"
)

const (
	cacheGetBooking       = "booking:get"
	cacheGetAllBooking    = "booking:gets"
	cacheCountBooking     = "booking:count"
	cacheAvailabilityRoot = "availability"
)

const priceTolerance = 1e-9

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	ChangeStatus(ctx context.Context, id string, req dto.ChangeStatusRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	providerRepo providerRepo.Provider
	offeringRepo providerRepo.Offering
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	dispatcher   events.Dispatcher
}

func New(
	repo repository.Booking,
	providerRepo providerRepo.Provider,
	offeringRepo providerRepo.Offering,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	dispatcher events.Dispatcher,
) Booking {
	return &serviceImpl{
		repo:         repo,
		providerRepo: providerRepo,
		offeringRepo: offeringRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		dispatcher:   dispatcher,
	}
}

// Create books a slot for the authenticated customer. The availability
// pre-check only produces a friendly early error; the partial unique index on
// active bookings is what actually guarantees a slot is never double-booked.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	bookingDate, err := timezone.Parse(constant.BookingDateFormat, req.BookingDate)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking date: %v", err)) // nolint:wrapcheck
	}

	if isDateInPast(bookingDate, timezone.Now()) {
		return res, failure.BadRequestFromString("booking date is in the past") // nolint:wrapcheck
	}

	provider, err := s.resolveProvider(ctx, req.ProviderID)
	if err != nil {
		return res, err
	}

	if !provider.HasSlot(req.TimeSlot, s.cfg.Booking.Slots) {
		return res, failure.BadRequestFromString(fmt.Sprintf("unrecognized time slot %q", req.TimeSlot)) // nolint:wrapcheck
	}

	lines, err := s.resolveServices(ctx, provider.ID, req.Services)
	if err != nil {
		return res, err
	}

	totalPrice := lines.Total()
	if req.TotalPrice != nil && !priceEquals(*req.TotalPrice, totalPrice) {
		return res, failure.BadRequestFromString(fmt.Sprintf("total price mismatch: expected %.2f", totalPrice)) // nolint:wrapcheck
	}

	taken, err := s.slotTaken(ctx, provider.ID, req.BookingDate, req.TimeSlot)
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot availability")

		return res, fmt.Errorf("failed to check slot availability: %w", err)
	}

	if taken {
		return res, failure.Conflict("slot no longer available") // nolint:wrapcheck
	}

	booking := model.Booking{
		ID:             uuid.NewString(),
		CustomerID:     user,
		ProviderID:     provider.ID,
		ProviderUserID: provider.UserID,
		Services:       lines,
		BookingDate:    bookingDate,
		TimeSlot:       req.TimeSlot,
		TotalPrice:     totalPrice,
		Status:         model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		if err == repository.ErrSlotTaken {
			log.Warn().
				Str("providerID", provider.ID).
				Str("date", req.BookingDate).
				Str("timeSlot", req.TimeSlot).
				Msg("booking lost the race for a slot")

			return res, failure.Conflict("slot no longer available") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, booking)

		if err := s.dispatcher.BookingCreated(c, events.BookingCreated{
			BookingID:   booking.ID,
			CustomerID:  booking.CustomerID,
			ProviderID:  booking.ProviderID,
			BookingDate: req.BookingDate,
			TimeSlot:    booking.TimeSlot,
			TotalPrice:  booking.TotalPrice,
		}); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to dispatch booking created event")
		}
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !booking.AccessibleBy(user, role) {
		return res, failure.Forbidden("You don't have access to this booking") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.scopeToActor(ctx, filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.scopeToActor(ctx, filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// ChangeStatus drives the booking lifecycle. The transition is applied as a
// compare-and-swap on the current status, so two racing actors cannot both
// apply a transition from the same state.
func (s *serviceImpl) ChangeStatus(ctx context.Context, id string, req dto.ChangeStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeBookingStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	next, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if !booking.AccessibleBy(user, role) || !booking.TransitionAllowedFor(next, user, role) {
		return res, failure.Forbidden("You are not allowed to change this booking's status") // nolint:wrapcheck
	}

	if !booking.Status.CanTransitionTo(next) {
		return res, failure.UnprocessableEntity(fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, next)) // nolint:wrapcheck
	}

	applied, err := s.repo.UpdateStatus(ctx, booking.ID, booking.Status, next, user)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if !applied {
		return res, failure.Conflict("booking was changed concurrently, refresh and retry") // nolint:wrapcheck
	}

	oldStatus := booking.Status
	booking.Status = next
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, booking)

		if err := s.dispatcher.BookingStatusChanged(c, events.BookingStatusChanged{
			BookingID:   booking.ID,
			CustomerID:  booking.CustomerID,
			ProviderID:  booking.ProviderID,
			BookingDate: booking.BookingDate.Format(constant.BookingDateFormat),
			TimeSlot:    booking.TimeSlot,
			OldStatus:   string(oldStatus),
			NewStatus:   string(next),
			ChangedBy:   user,
		}); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to dispatch booking status changed event")
		}
	}()

	res.FromModel(booking)

	return res, nil
}

// Delete is the administrative hard-delete path, outside the soft lifecycle.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteBooking")
	defer scope.End()

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleAdmin && role != constant.RoleSuperAdmin {
		return failure.Forbidden("only administrators may delete bookings") // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, booking)
	}()

	return nil
}

func (s *serviceImpl) resolveProvider(ctx context.Context, providerID string) (providerModel.Provider, error) {
	provider, err := s.providerRepo.Get(ctx, shared.FilterByID(providerID, providerModel.FieldID, providerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get provider")

		return provider, fmt.Errorf("failed to get provider: %w", err)
	}

	if provider.ID == constant.Empty || !provider.Active {
		return provider, failure.NotFound("provider not found") // nolint:wrapcheck
	}

	return provider, nil
}

// resolveServices snapshots the requested catalog entries in request order.
func (s *serviceImpl) resolveServices(ctx context.Context, providerID string, names []string) (model.ServiceLines, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    providerModel.FieldOfferingProviderID,
				Operator: gDto.FilterOperatorEq,
				Value:    providerID,
				Table:    providerModel.OfferingTableName,
			},
			gDto.Filter{
				Field:    providerModel.FieldOfferingName,
				Operator: gDto.FilterOperatorIn,
				ArgName:  "offering_name",
				Value:    names,
				Table:    providerModel.OfferingTableName,
			},
			gDto.Filter{
				Field:    providerModel.FieldOfferingActive,
				Operator: gDto.FilterOperatorEq,
				ArgName:  "offering_active",
				Value:    true,
				Table:    providerModel.OfferingTableName,
			},
		},
	}

	offerings, err := s.offeringRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get provider services")

		return nil, fmt.Errorf("failed to get provider services: %w", err)
	}

	byName := make(map[string]int, len(offerings))
	for i, offering := range offerings {
		byName[offering.Name] = i
	}

	lines := make(model.ServiceLines, 0, len(names))

	for _, name := range names {
		idx, ok := byName[name]
		if !ok {
			return nil, failure.BadRequestFromString(fmt.Sprintf("service %q is not offered by this provider", name)) // nolint:wrapcheck
		}

		offering := offerings[idx]
		lines = append(lines, model.ServiceLine{
			Name:            offering.Name,
			Price:           offering.Price,
			DurationMinutes: offering.DurationMinutes,
		})
	}

	return lines, nil
}

func (s *serviceImpl) slotTaken(ctx context.Context, providerID, date, timeSlot string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProviderID,
				Operator: gDto.FilterOperatorEq,
				Value:    providerID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldTimeSlot,
				Operator: gDto.FilterOperatorEq,
				Value:    timeSlot,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				ArgName:  "active_status",
				Value:    model.NonTerminalStatuses(),
				Table:    model.TableName,
			},
		},
	}

	return s.repo.Exist(ctx, filter) //nolint:wrapcheck
}

// scopeToActor restricts listing filters to what the actor may see: admins
// see everything, everyone else only bookings where they are the customer or
// the provider's owner account.
func (s *serviceImpl) scopeToActor(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role == constant.RoleAdmin || role == constant.RoleSuperAdmin {
		return filter
	}

	ownership := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCustomerID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldProviderUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    model.TableName,
			},
		},
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{ownership, filter},
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, booking model.Booking) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	availabilityKey := shared.BuildCacheKey(cacheAvailabilityRoot, booking.ProviderID, booking.BookingDate.Format(constant.BookingDateFormat))
	if err := s.cache.Delete(ctx, availabilityKey); err != nil {
		log.Error().Err(err).Msg("failed to delete availability from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}

func priceEquals(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}

	return diff < priceTolerance
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return dateOnly.Before(nowOnly)
}
