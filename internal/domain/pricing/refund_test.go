//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/pricing"
	"staybook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixture: 3 nights at $150, no cleaning fee, $50 service fee.
// Total $500, of which $450 is refundable under the guest policy.
func refundableBooking(status booking.Status) *booking.Booking {
	return builder.NewBookingBuilder().
		WithFees(0, 5000).
		WithStatus(status).
		BuildReconstructed()
}

func TestEvaluateCancellation_GuestPolicy(t *testing.T) {
	// check-in fixed at 2025-03-10 by the builder
	t.Run("more than 7 days before check-in refunds total minus service fee", func(t *testing.T) {
		b := refundableBooking(booking.StatusConfirmed)
		now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

		outcome, err := pricing.EvaluateCancellation(b, false, now)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelledByGuest, outcome.NewStatus)
		assert.Equal(t, int64(45000), outcome.RefundCents)
	})

	t.Run("exactly 7 days before check-in falls under the half refund", func(t *testing.T) {
		b := refundableBooking(booking.StatusConfirmed)
		now := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

		outcome, err := pricing.EvaluateCancellation(b, false, now)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelledByGuest, outcome.NewStatus)
		assert.Equal(t, int64(22500), outcome.RefundCents)
	})

	t.Run("the day before check-in refunds half", func(t *testing.T) {
		b := refundableBooking(booking.StatusPending)
		now := time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)

		outcome, err := pricing.EvaluateCancellation(b, false, now)
		require.NoError(t, err)
		assert.Equal(t, int64(22500), outcome.RefundCents)
	})

	t.Run("half refund rounds half to even", func(t *testing.T) {
		// one night at 101 cents, no fees: half of 101 is 50.5 -> 50
		oneNight := builder.NewBookingBuilder().
			WithDates(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)).
			WithNightlyRate(101).
			WithFees(0, 0).
			BuildReconstructed()
		now := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)

		outcome, err := pricing.EvaluateCancellation(oneNight, false, now)
		require.NoError(t, err)
		assert.Equal(t, int64(50), outcome.RefundCents)

		// 103 cents: half is 51.5 -> 52
		oddUp := builder.NewBookingBuilder().
			WithDates(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)).
			WithNightlyRate(103).
			WithFees(0, 0).
			BuildReconstructed()

		outcome, err = pricing.EvaluateCancellation(oddUp, false, now)
		require.NoError(t, err)
		assert.Equal(t, int64(52), outcome.RefundCents)
	})
}

func TestEvaluateCancellation_HostPolicy(t *testing.T) {
	t.Run("host cancellation refunds total plus ten percent", func(t *testing.T) {
		b := refundableBooking(booking.StatusConfirmed)
		now := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)

		outcome, err := pricing.EvaluateCancellation(b, true, now)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelledByHost, outcome.NewStatus)
		assert.Equal(t, int64(55000), outcome.RefundCents)
	})

	t.Run("host policy ignores the cutoff entirely", func(t *testing.T) {
		b := refundableBooking(booking.StatusPending)
		farOut := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		outcome, err := pricing.EvaluateCancellation(b, true, farOut)
		require.NoError(t, err)
		assert.Equal(t, int64(55000), outcome.RefundCents)
	})

	t.Run("compensation rounds half to even", func(t *testing.T) {
		// one night at 105 cents: 10% is 10.5 -> 10 (even)
		b := builder.NewBookingBuilder().
			WithDates(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)).
			WithNightlyRate(105).
			WithFees(0, 0).
			BuildReconstructed()

		outcome, err := pricing.EvaluateCancellation(b, true, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(105+10), outcome.RefundCents)
	})
}

func TestEvaluateCancellation_Terminal(t *testing.T) {
	for _, status := range []booking.Status{
		booking.StatusCompleted,
		booking.StatusDeclined,
		booking.StatusCancelledByGuest,
		booking.StatusCancelledByHost,
	} {
		b := refundableBooking(status)
		_, err := pricing.EvaluateCancellation(b, false, time.Now())
		require.ErrorIs(t, err, pricing.ErrAlreadyTerminal, "status %s", status)
	}
}
