package queries

import (
	"context"
	"time"

	"staybook/internal/pkg/dates"
	"staybook/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen -source=./availability.go -destination=../../../tests/mock/queries/availability.go -package=queriesmock

var ErrInvalidDateRange = errs.New("invalid date range")

type AvailabilityQueries interface {
	Check(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error)
}

// AvailabilityReader is satisfied by the store directly and by the
// read-through cache decorating it.
type AvailabilityReader interface {
	Window(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	reader AvailabilityReader
}

func NewAvailabilityQueries(reader AvailabilityReader) AvailabilityQueries {
	return &availabilityQueriesImpl{reader: reader}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityView, error) {
	in := dates.Civil(checkIn)
	out := dates.Civil(checkOut)
	if !out.After(in) {
		return nil, ErrInvalidDateRange
	}

	return q.reader.Window(ctx, propertyID, in, out)
}
