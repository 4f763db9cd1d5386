package pricing

import (
	"errors"
	"time"

	"staybook/internal/domain/booking"
)

var ErrAlreadyTerminal = errors.New("booking already in a terminal state")

const (
	guestCancelCutoffDays   = 7
	hostCompensationPercent = 10
)

// CancellationOutcome is the evaluator's verdict: the terminal status to
// apply and the amount to refund.
type CancellationOutcome struct {
	NewStatus   booking.Status
	RefundCents int64
}

// EvaluateCancellation maps (booking, actor, now) to a refund amount and
// terminal status. Guest policy: more than 7 days before check-in refunds
// total minus service fee; within 7 days (inclusive) half of that. Host or
// admin cancellation refunds the total plus 10% compensation. Amounts are
// rounded to the cent with round-half-even.
func EvaluateCancellation(b *booking.Booking, actorIsHost bool, now time.Time) (CancellationOutcome, error) {
	if b.Status().IsTerminal() {
		return CancellationOutcome{}, ErrAlreadyTerminal
	}

	total := b.Price().TotalCents
	serviceFee := b.Price().ServiceFeeCents

	if actorIsHost {
		compensation := roundHalfEvenDiv(total*hostCompensationPercent, 100)
		return CancellationOutcome{
			NewStatus:   booking.StatusCancelledByHost,
			RefundCents: total + compensation,
		}, nil
	}

	refundable := total - serviceFee
	if refundable < 0 {
		refundable = 0
	}

	cutoff := b.Stay().CheckIn().AddDate(0, 0, -guestCancelCutoffDays)
	if now.Before(cutoff) {
		return CancellationOutcome{
			NewStatus:   booking.StatusCancelledByGuest,
			RefundCents: refundable,
		}, nil
	}

	return CancellationOutcome{
		NewStatus:   booking.StatusCancelledByGuest,
		RefundCents: roundHalfEvenDiv(refundable, 2),
	}, nil
}

// roundHalfEvenDiv divides num by den rounding halves to the nearest even
// integer, avoiding the systematic bias of always rounding half up.
func roundHalfEvenDiv(num, den int64) int64 {
	if den < 0 {
		num, den = -num, -den
	}
	neg := num < 0
	if neg {
		num = -num
	}

	q := num / den
	r := num % den

	switch {
	case 2*r > den:
		q++
	case 2*r == den && q%2 == 1:
		q++
	}

	if neg {
		return -q
	}
	return q
}
