package dto_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pitstop/internal/domains/booking/model/dto"
	"pitstop/shared/failure"
	"pitstop/shared/validator"
)

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		ProviderID:  "7c11cc0e-52bf-4b39-9f0c-0eaf58725f7a",
		Services:    []string{"Oil Change"},
		BookingDate: "2026-09-15",
		TimeSlot:    "09:00 AM",
	}
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(req *dto.CreateBookingRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(req *dto.CreateBookingRequest) {},
		},
		{
			name: "valid request with advisory total",
			mutate: func(req *dto.CreateBookingRequest) {
				total := 49.99
				req.TotalPrice = &total
			},
		},
		{
			name: "missing provider id",
			mutate: func(req *dto.CreateBookingRequest) {
				req.ProviderID = ""
			},
			wantErr: true,
		},
		{
			name: "provider id is not a uuid",
			mutate: func(req *dto.CreateBookingRequest) {
				req.ProviderID = "not-a-uuid"
			},
			wantErr: true,
		},
		{
			name: "nil services",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Services = nil
			},
			wantErr: true,
		},
		{
			name: "empty services",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Services = []string{}
			},
			wantErr: true,
		},
		{
			name: "blank service name",
			mutate: func(req *dto.CreateBookingRequest) {
				req.Services = []string{""}
			},
			wantErr: true,
		},
		{
			name: "missing booking date",
			mutate: func(req *dto.CreateBookingRequest) {
				req.BookingDate = ""
			},
			wantErr: true,
		},
		{
			name: "missing time slot",
			mutate: func(req *dto.CreateBookingRequest) {
				req.TimeSlot = ""
			},
			wantErr: true,
		},
		{
			name: "negative advisory total",
			mutate: func(req *dto.CreateBookingRequest) {
				total := -1.0
				req.TotalPrice = &total
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChangeStatusRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr bool
	}{
		{name: "pending", status: "pending"},
		{name: "confirmed", status: "confirmed"},
		{name: "completed", status: "completed"},
		{name: "cancelled", status: "cancelled"},
		{name: "empty", status: "", wantErr: true},
		{name: "unknown value", status: "archived", wantErr: true},
		{name: "uppercase rejected", status: "CONFIRMED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.ChangeStatusRequest{Status: tt.status}

			err := validator.ValidateStruct(&req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingRequest_DecodeFromBody(t *testing.T) {
	t.Run("well formed body decodes and validates", func(t *testing.T) {
		body := `{
			"provider_id": "7c11cc0e-52bf-4b39-9f0c-0eaf58725f7a",
			"services": ["Oil Change", "Tire Rotation"],
			"booking_date": "2026-09-15",
			"time_slot": "10:00 AM",
			"total_price": 74.99
		}`

		req := dto.CreateBookingRequest{}
		err := validator.Validate(strings.NewReader(body), &req)

		assert.NoError(t, err)
		assert.Len(t, req.Services, 2)
		assert.NotNil(t, req.TotalPrice)
		assert.InDelta(t, 74.99, *req.TotalPrice, 1e-9)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		req := dto.CreateBookingRequest{}
		err := validator.Validate(strings.NewReader(`{"provider_id":`), &req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
