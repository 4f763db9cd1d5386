// Package dates holds the calendar-date helpers shared by the booking core.
// A date is a time.Time pinned to UTC midnight; ranges are half-open
// [checkIn, checkOut).
package dates

import (
	"time"

	"staybook/internal/pkg/errs"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errs.New("invalid calendar date")

// Civil drops the clock component, keeping only the calendar date in UTC.
func Civil(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrInvalidDate)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Tomorrow is the earliest date a stay may begin on.
func Tomorrow(now time.Time) time.Time {
	return Civil(now).AddDate(0, 0, 1)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	return int(Civil(checkOut).Sub(Civil(checkIn)).Hours() / 24)
}

// Nights enumerates the occupied nights of [checkIn, checkOut) in order.
func Nights(checkIn, checkOut time.Time) []time.Time {
	n := NightsBetween(checkIn, checkOut)
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	for d := Civil(checkIn); d.Before(Civil(checkOut)); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}
