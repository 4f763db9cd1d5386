package queries

import (
	"context"

	"staybook/internal/domain/auth"
	"staybook/internal/infra"
	"staybook/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen -source=./booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrNotBookingOwner = errs.New("not allowed to view this booking")
)

type BookingQueries interface {
	GetByID(ctx context.Context, principal auth.Principal, id uuid.UUID) (*BookingView, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, limit int) ([]*BookingListItem, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByGuestID(ctx context.Context, guestID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, principal auth.Principal, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	// Guests see their own bookings, hosts the bookings on their
	// properties, admins everything.
	switch {
	case principal.Role == auth.RoleAdmin:
	case view.GuestID == principal.UserID:
	case view.PropertyHostID == principal.UserID:
	default:
		return nil, ErrNotBookingOwner
	}

	return view, nil
}

func (q *bookingQueriesImpl) ListByGuest(ctx context.Context, guestID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	return q.store.FindByGuestID(ctx, guestID, int32(limit))
}
