package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"pitstop/config"
	"pitstop/infras/otel/mocks"
	"pitstop/internal/domains/availability/model/dto"
	"pitstop/internal/domains/availability/service"
	bookingMocks "pitstop/internal/domains/booking/mocks"
	bookingModel "pitstop/internal/domains/booking/model"
	providerMocks "pitstop/internal/domains/provider/mocks"
	providerModel "pitstop/internal/domains/provider/model"
	cacheMocks "pitstop/shared/cache/mocks"
	"pitstop/shared/failure"
)

const providerID = "7c11cc0e-52bf-4b39-9f0c-0eaf58725f7a"

type fixtures struct {
	providerRepo *providerMocks.MockProvider
	bookingRepo  *bookingMocks.MockBooking
	cache        *cacheMocks.MockRedisCache
	svc          service.Availability
	saved        chan struct{}
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixtures{
		providerRepo: providerMocks.NewMockProvider(ctrl),
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		saved:        make(chan struct{}, 4),
	}

	cfg := &config.Config{}
	cfg.Booking.Slots = []string{"09:00 AM", "10:00 AM", "11:00 AM"}

	f.svc = service.New(f.providerRepo, f.bookingRepo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string, any, int) error {
		select {
		case f.saved <- struct{}{}:
		default:
		}

		return nil
	}).AnyTimes()

	return f
}

func (f *fixtures) waitSave(t *testing.T) {
	t.Helper()

	select {
	case <-f.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cache save")
	}
}

func activeProvider() providerModel.Provider {
	return providerModel.Provider{
		ID:     providerID,
		UserID: "owner-1",
		Name:   "Downtown Garage",
		Active: true,
	}
}

func TestAvailabilityService_Get(t *testing.T) {
	t.Run("all slots free on an empty day", func(t *testing.T) {
		f := newFixtures(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.providerRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeProvider(), nil)
		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		res, err := f.svc.Get(context.Background(), providerID, "2026-09-15")

		assert.NoError(t, err)
		assert.Equal(t, providerID, res.ProviderID)
		assert.Equal(t, "2026-09-15", res.Date)
		assert.Len(t, res.Slots, 3)

		for _, slot := range res.Slots {
			assert.False(t, slot.IsBooked)
			assert.Equal(t, dto.SlotStatusFree, slot.Status)
		}

		f.waitSave(t)
	})

	t.Run("slots held by live bookings are marked booked", func(t *testing.T) {
		f := newFixtures(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.providerRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeProvider(), nil)
		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]bookingModel.Booking{
				{TimeSlot: "10:00 AM", Status: bookingModel.StatusPending},
			}, nil)

		res, err := f.svc.Get(context.Background(), providerID, "2026-09-15")

		assert.NoError(t, err)

		statuses := map[string]dto.SlotStatusResponse{}
		for _, slot := range res.Slots {
			statuses[slot.TimeSlot] = slot
		}

		assert.False(t, statuses["09:00 AM"].IsBooked)
		assert.True(t, statuses["10:00 AM"].IsBooked)
		assert.Equal(t, dto.SlotStatusBooked, statuses["10:00 AM"].Status)
		assert.False(t, statuses["11:00 AM"].IsBooked)

		f.waitSave(t)
	})

	t.Run("custom catalog replaces the default", func(t *testing.T) {
		f := newFixtures(t)

		provider := activeProvider()
		provider.SlotCatalog = providerModel.SlotCatalog{"07:00 AM", "08:00 AM"}

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.providerRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(provider, nil)
		f.bookingRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		res, err := f.svc.Get(context.Background(), providerID, "2026-09-15")

		assert.NoError(t, err)
		assert.Len(t, res.Slots, 2)
		assert.Equal(t, "07:00 AM", res.Slots[0].TimeSlot)
		assert.Equal(t, "08:00 AM", res.Slots[1].TimeSlot)

		f.waitSave(t)
	})

	t.Run("invalid date is rejected", func(t *testing.T) {
		f := newFixtures(t)

		_, err := f.svc.Get(context.Background(), providerID, "15-09-2026")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown provider yields not found", func(t *testing.T) {
		f := newFixtures(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.providerRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(providerModel.Provider{}, nil)

		_, err := f.svc.Get(context.Background(), providerID, "2026-09-15")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("cache hit skips the repositories", func(t *testing.T) {
		f := newFixtures(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.AvailabilityResponse)
				res.ProviderID = providerID
				res.Date = "2026-09-15"
				res.Slots = []dto.SlotStatusResponse{{TimeSlot: "09:00 AM", Status: dto.SlotStatusFree}}

				return nil
			})

		res, err := f.svc.Get(context.Background(), providerID, "2026-09-15")

		assert.NoError(t, err)
		assert.Len(t, res.Slots, 1)
	})
}
