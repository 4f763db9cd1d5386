package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGuestCountInvalid = errors.New("guest count out of range")
	ErrTerminalState     = errors.New("booking is in a terminal state")
	ErrEmptySnapshot     = errors.New("price snapshot cannot be empty")
)

// Booking is the unit of reservation. It is created only by the reservation
// coordinator and never physically deleted; cancellation and decline are
// terminal statuses, preserving history.
type Booking struct {
	id               uuid.UUID
	propertyID       uuid.UUID
	guestID          uuid.UUID
	stay             StayRange
	guests           int
	status           Status
	price            PriceSnapshot
	paymentIntentRef *string
	cancelReason     *string
	createdAt        time.Time
	updatedAt        time.Time
}

func NewBooking(propertyID, guestID uuid.UUID, stay StayRange, guests int, price PriceSnapshot) (*Booking, error) {
	if guests < 1 {
		return nil, ErrGuestCountInvalid
	}
	if price.IsZero() && len(price.Nights) == 0 {
		return nil, ErrEmptySnapshot
	}

	return &Booking{
		id:         uuid.New(),
		propertyID: propertyID,
		guestID:    guestID,
		stay:       stay,
		guests:     guests,
		status:     StatusPending,
		price:      price,
	}, nil
}

func ReconstructBooking(
	id, propertyID, guestID uuid.UUID,
	stay StayRange,
	guests int,
	status Status,
	price PriceSnapshot,
	paymentIntentRef, cancelReason *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:               id,
		propertyID:       propertyID,
		guestID:          guestID,
		stay:             stay,
		guests:           guests,
		status:           status,
		price:            price,
		paymentIntentRef: paymentIntentRef,
		cancelReason:     cancelReason,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// TransitionTo applies a lifecycle transition, rejecting anything outside
// the transition table. The receiver is unchanged on error.
func (b *Booking) TransitionTo(next Status) error {
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

// Reprice replaces the stay, guest count and snapshot in one step (booking
// update). The caller computes the fresh snapshot; the old one is returned
// so the price difference can be reported.
func (b *Booking) Reprice(stay StayRange, guests int, price PriceSnapshot) (PriceSnapshot, error) {
	if b.status.IsTerminal() {
		return PriceSnapshot{}, ErrTerminalState
	}
	if guests < 1 {
		return PriceSnapshot{}, ErrGuestCountInvalid
	}
	old := b.price
	b.stay = stay
	b.guests = guests
	b.price = price
	return old, nil
}

func (b *Booking) SetPaymentIntentRef(ref string) {
	b.paymentIntentRef = &ref
}

func (b *Booking) SetCancelReason(reason string) {
	b.cancelReason = &reason
}

func (b *Booking) Occupies() bool {
	return b.status.Occupies()
}

func (b *Booking) HasCheckedOut(now time.Time) bool {
	return !now.Before(b.stay.CheckOut())
}

func (b *Booking) ID() uuid.UUID             { return b.id }
func (b *Booking) PropertyID() uuid.UUID     { return b.propertyID }
func (b *Booking) GuestID() uuid.UUID        { return b.guestID }
func (b *Booking) Stay() StayRange           { return b.stay }
func (b *Booking) Guests() int               { return b.guests }
func (b *Booking) Status() Status            { return b.status }
func (b *Booking) Price() PriceSnapshot      { return b.price }
func (b *Booking) PaymentIntentRef() *string { return b.paymentIntentRef }
func (b *Booking) CancelReason() *string     { return b.cancelReason }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }
