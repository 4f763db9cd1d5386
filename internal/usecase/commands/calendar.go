package commands

import (
	"context"
	"time"

	"staybook/internal/domain/auth"
	"staybook/internal/domain/calendar"
	"staybook/internal/infra"
	"staybook/internal/pkg/errs"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen -source=./calendar.go -destination=../../../tests/mock/commands/calendar.go -package=commandsmock

type OverrideInput struct {
	Date            time.Time
	Available       bool
	AdjustmentCents int64
	MinStayNights   int
}

type CalendarCommands interface {
	ApplyOverrides(ctx context.Context, principal auth.Principal, propertyID uuid.UUID, inputs []OverrideInput) error
}

type calendarCommandsImpl struct {
	uow         shared.UnitOfWork
	invalidator AvailabilityInvalidator
}

func NewCalendarCommands(unitOfWork shared.UnitOfWork, invalidator AvailabilityInvalidator) CalendarCommands {
	return &calendarCommandsImpl{uow: unitOfWork, invalidator: invalidator}
}

// ApplyOverrides upserts per-day calendar records for the host's property.
// Each record replaces the stored one wholesale; marking days unavailable
// never touches existing bookings on those days.
func (c *calendarCommandsImpl) ApplyOverrides(ctx context.Context, principal auth.Principal, propertyID uuid.UUID, inputs []OverrideInput) error {
	if len(inputs) == 0 {
		return ErrValidation
	}

	overrides := make([]calendar.DayOverride, 0, len(inputs))
	for _, in := range inputs {
		o, err := calendar.NewDayOverride(in.Date, in.Available, in.AdjustmentCents, in.MinStayNights)
		if err != nil {
			return errs.Mark(err, ErrValidation)
		}
		overrides = append(overrides, o)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		property, err := tx.Reads().PropertyByID(ctx, propertyID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPropertyNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !principal.ActsAsHost(property.HostID) {
			return ErrNotAllowed
		}

		if err := tx.Calendar().UpsertOverrides(ctx, propertyID, overrides); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return mapStoreErr(err)
	}

	c.invalidator.InvalidateProperty(ctx, propertyID)
	return nil
}
