package calendar

import (
	"time"

	"staybook/internal/pkg/dates"
)

const DefaultMinStayNights = 1

// Window is the computed availability of a property over a half-open date
// range, combining explicit day overrides with the occupied nights of
// pending/confirmed bookings.
type Window struct {
	AvailableNights []time.Time
	BlockedNights   []time.Time
	NightlyRates    map[string]int64 // dates.Layout key -> rate cents for that night
	MinStayNights   int
}

// BuildWindow folds overrides and occupied nights over [checkIn, checkOut).
// occupied dates come from the booking store; overrides from the calendar
// store. baseRateCents is the property's current base nightly rate.
func BuildWindow(checkIn, checkOut time.Time, baseRateCents int64, overrides []DayOverride, occupied []time.Time) Window {
	byDate := make(map[string]DayOverride, len(overrides))
	for _, o := range overrides {
		byDate[dates.Format(o.Date())] = o
	}
	occupiedSet := make(map[string]struct{}, len(occupied))
	for _, d := range occupied {
		occupiedSet[dates.Format(d)] = struct{}{}
	}

	w := Window{
		NightlyRates:  make(map[string]int64),
		MinStayNights: DefaultMinStayNights,
	}
	for _, night := range dates.Nights(checkIn, checkOut) {
		key := dates.Format(night)
		rate := baseRateCents
		available := true

		if o, ok := byDate[key]; ok {
			rate += o.AdjustmentCents()
			available = o.Available()
			if o.MinStayNights() > w.MinStayNights {
				w.MinStayNights = o.MinStayNights()
			}
		}
		if rate < 0 {
			rate = 0
		}
		if _, booked := occupiedSet[key]; booked {
			available = false
		}

		w.NightlyRates[key] = rate
		if available {
			w.AvailableNights = append(w.AvailableNights, night)
		} else {
			w.BlockedNights = append(w.BlockedNights, night)
		}
	}
	return w
}

func (w Window) AllAvailable() bool {
	return len(w.BlockedNights) == 0
}

// RateFor returns the per-night rate, falling back to the base rate for
// nights outside the window.
func (w Window) RateFor(night time.Time, baseRateCents int64) int64 {
	if rate, ok := w.NightlyRates[dates.Format(night)]; ok {
		return rate
	}
	return baseRateCents
}
