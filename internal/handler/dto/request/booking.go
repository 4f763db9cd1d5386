package request

import (
	"time"

	"staybook/internal/pkg/dates"

	"github.com/google/uuid"
)

// Dates travel as "YYYY-MM-DD" strings on the wire.

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	CheckIn    string    `json:"check_in" binding:"required"`
	CheckOut   string    `json:"check_out" binding:"required"`
	Guests     int       `json:"guests" binding:"required,min=1"`
}

func (r CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = dates.Parse(r.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err = dates.Parse(r.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}

type UpdateBookingRequest struct {
	CheckIn  *string `json:"check_in,omitempty"`
	CheckOut *string `json:"check_out,omitempty"`
	Guests   *int    `json:"guests,omitempty"`
}

func (r UpdateBookingRequest) ParseDates() (checkIn, checkOut *time.Time, err error) {
	if r.CheckIn != nil {
		t, err := dates.Parse(*r.CheckIn)
		if err != nil {
			return nil, nil, err
		}
		checkIn = &t
	}
	if r.CheckOut != nil {
		t, err := dates.Parse(*r.CheckOut)
		if err != nil {
			return nil, nil, err
		}
		checkOut = &t
	}
	return checkIn, checkOut, nil
}

type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}
