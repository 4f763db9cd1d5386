package shared

import (
	"context"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen -source=./uow.go -destination=../../../tests/mock/shared/uow.go -package=sharedmock

// UnitOfWork scopes the conflict-check-then-commit sequence. Within runs
// the callback inside a SERIALIZABLE transaction with bounded retry on
// serialization conflicts, so two concurrent units racing on the same
// nights cannot both commit.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: pool-bound reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Calendar() CalendarRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

// CommandReads are the write-path reads. Obtained through Tx.Reads() they
// run under the same isolation as the commit, which is what keeps the
// conflict decision sound; the availability cache is never consulted here.
type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	OverridesForRange(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) ([]calendar.DayOverride, error)
	OccupiedRanges(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) ([]OccupiedRange, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	ReplaceSnapshot(ctx context.Context, b *booking.Booking) error
	// UpdateStatus compares-and-swaps the status; zero rows affected means
	// the stored state no longer matches and surfaces as KindConflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, cancelReason *string) error
	SetPaymentIntentRef(ctx context.Context, id uuid.UUID, ref string) error
}

type CalendarRepository interface {
	UpsertOverrides(ctx context.Context, propertyID uuid.UUID, overrides []calendar.DayOverride) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
