//go:build unit

package booking_test

import (
	"testing"
	"time"

	"staybook/internal/domain/booking"
	"staybook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, 2, actual.Guests())
		assert.Equal(t, int64(56000), actual.Price().TotalCents)
		assert.Nil(t, actual.PaymentIntentRef())
	})

	t.Run("zero guests rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithGuests(0).BuildDomain()
		require.ErrorIs(t, err, booking.ErrGuestCountInvalid)
	})

	t.Run("distinct bookings get distinct IDs", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		first, err1 := b.BuildDomain()
		second, err2 := b.BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func TestBooking_TransitionTo(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		require.NoError(t, b.TransitionTo(booking.StatusConfirmed))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("pending to completed is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		err := b.TransitionTo(booking.StatusCompleted)
		require.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusPending, b.Status(), "status unchanged on rejected transition")
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		for _, terminal := range []booking.Status{
			booking.StatusCompleted,
			booking.StatusDeclined,
			booking.StatusCancelledByGuest,
			booking.StatusCancelledByHost,
		} {
			b := builder.NewBookingBuilder().WithStatus(terminal).BuildReconstructed()
			err := b.TransitionTo(booking.StatusConfirmed)
			require.ErrorIs(t, err, booking.ErrInvalidTransition, "from %s", terminal)
		}
	})
}

func TestBooking_Reprice(t *testing.T) {
	t.Run("replaces stay, guests and snapshot, returns old snapshot", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		oldTotal := b.Price().TotalCents

		fresh := builder.NewBookingBuilder().
			WithDates(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 6, 0, 0, 0, 0, time.UTC)).
			BuildSnapshot()
		stay := booking.ReconstructStayRange(
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 6, 0, 0, 0, 0, time.UTC),
		)

		old, err := b.Reprice(stay, 3, fresh)
		require.NoError(t, err)

		assert.Equal(t, oldTotal, old.TotalCents)
		assert.Equal(t, 3, b.Guests())
		assert.Equal(t, 5, b.Stay().Nights())
		assert.Equal(t, fresh.TotalCents, b.Price().TotalCents)
	})

	t.Run("terminal booking cannot be repriced", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCancelledByGuest).BuildReconstructed()
		_, err := b.Reprice(b.Stay(), 2, b.Price())
		require.ErrorIs(t, err, booking.ErrTerminalState)
	})
}

func TestBooking_HasCheckedOut(t *testing.T) {
	b := builder.NewBookingBuilder().BuildReconstructed()

	assert.False(t, b.HasCheckedOut(time.Date(2025, 3, 12, 23, 0, 0, 0, time.UTC)))
	assert.True(t, b.HasCheckedOut(time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)))
	assert.True(t, b.HasCheckedOut(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
}
