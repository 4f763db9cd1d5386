// Package pricing holds the pure pricing and refund calculations. Nothing
// here touches a store or a clock beyond the instants passed in; identical
// inputs always produce identical output.
package pricing

import (
	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
)

type FeeSchedule struct {
	CleaningFeeCents int64
	ServiceFeeCents  int64
}

// Quote computes the itemized snapshot for a stay: per-night rate is the
// base rate plus that night's override adjustment, floored at zero, then
// fees on top.
func Quote(stay booking.StayRange, baseRateCents int64, window calendar.Window, fees FeeSchedule, currency string) booking.PriceSnapshot {
	nights := stay.NightDates()
	lines := make([]booking.NightLine, 0, len(nights))

	var baseTotal int64
	for _, night := range nights {
		rate := window.RateFor(night, baseRateCents)
		lines = append(lines, booking.NightLine{Date: night, AmountCents: rate})
		baseTotal += rate
	}

	return booking.PriceSnapshot{
		Nights:           lines,
		BaseTotalCents:   baseTotal,
		CleaningFeeCents: fees.CleaningFeeCents,
		ServiceFeeCents:  fees.ServiceFeeCents,
		TotalCents:       baseTotal + fees.CleaningFeeCents + fees.ServiceFeeCents,
		Currency:         currency,
	}
}

// Diff reports the price difference of a re-priced booking, newTotal minus
// oldTotal.
func Diff(old, updated booking.PriceSnapshot) int64 {
	return updated.TotalCents - old.TotalCents
}
