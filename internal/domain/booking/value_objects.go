package booking

import (
	"errors"
	"fmt"
	"time"

	"staybook/internal/pkg/dates"
)

var (
	ErrCheckOutNotAfterCheckIn = errors.New("check-out must be after check-in")
	ErrCheckInTooSoon          = errors.New("check-in must be tomorrow or later")
	ErrStayTooLong             = errors.New("stay exceeds the maximum length")
)

const MaxStayNights = 90

// StayRange is the half-open occupied-night interval [checkIn, checkOut).
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayRange(checkIn, checkOut, now time.Time) (StayRange, error) {
	in := dates.Civil(checkIn)
	out := dates.Civil(checkOut)

	if !out.After(in) {
		return StayRange{}, ErrCheckOutNotAfterCheckIn
	}
	if in.Before(dates.Tomorrow(now)) {
		return StayRange{}, ErrCheckInTooSoon
	}
	if dates.NightsBetween(in, out) > MaxStayNights {
		return StayRange{}, ErrStayTooLong
	}

	return StayRange{checkIn: in, checkOut: out}, nil
}

// ReconstructStayRange hydrates a stored range without re-running the
// lead-time check; past bookings stay loadable.
func ReconstructStayRange(checkIn, checkOut time.Time) StayRange {
	return StayRange{checkIn: dates.Civil(checkIn), checkOut: dates.Civil(checkOut)}
}

func (r StayRange) CheckIn() time.Time  { return r.checkIn }
func (r StayRange) CheckOut() time.Time { return r.checkOut }

func (r StayRange) Nights() int {
	return dates.NightsBetween(r.checkIn, r.checkOut)
}

func (r StayRange) NightDates() []time.Time {
	return dates.Nights(r.checkIn, r.checkOut)
}

func (r StayRange) Overlaps(other StayRange) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

// OverlapNights returns the nights shared with [otherIn, otherOut), ordered.
func (r StayRange) OverlapNights(otherIn, otherOut time.Time) []time.Time {
	in := dates.Civil(otherIn)
	out := dates.Civil(otherOut)
	if in.Before(r.checkIn) {
		in = r.checkIn
	}
	if out.After(r.checkOut) {
		out = r.checkOut
	}
	return dates.Nights(in, out)
}

func (r StayRange) String() string {
	return fmt.Sprintf("[%s,%s)", dates.Format(r.checkIn), dates.Format(r.checkOut))
}
