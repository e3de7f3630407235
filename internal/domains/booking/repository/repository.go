package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"github.com/lib/pq"

	"pitstop/infras/otel"
	"pitstop/infras/postgres"
	"pitstop/internal/domains/booking/model"
	"pitstop/shared/constant"
	gDto "pitstop/shared/dto"
	gRepo "pitstop/shared/repository"
	"pitstop/shared/timezone"
)

// ErrSlotTaken is returned when an insert loses the race for a slot: the
// partial unique index on (provider_id, booking_date, time_slot) over
// non-terminal statuses rejected the row.
var ErrSlotTaken = errors.New("time slot already booked")

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateStatus(ctx context.Context, id string, from, to model.Status, modifiedBy string) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Insert persists a booking, translating a unique violation on the active
// slot index into ErrSlotTaken. The index is the authoritative guard against
// double-booking; callers must treat ErrSlotTaken as a retryable conflict.
func (repo *repositoryImpl) Insert(ctx context.Context, mod model.Booking) error {
	err := repo.Repository.Insert(ctx, mod)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return ErrSlotTaken
		}

		return err //nolint:wrapcheck
	}

	return nil
}

// UpdateStatus applies a status transition as a compare-and-swap: the row is
// updated only while it still holds the expected current status. A false
// result means a concurrent transition won.
func (repo *repositoryImpl) UpdateStatus(ctx context.Context, id string, from, to model.Status, modifiedBy string) (bool, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				ArgName:  "from_status",
				Value:    string(from),
				Table:    model.TableName,
			},
		},
	}

	mod := map[string]any{
		model.FieldStatus:        string(to),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: modifiedBy,
	}

	affected, err := repo.UpdateChecked(ctx, mod, filter)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}
