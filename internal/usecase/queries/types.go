package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID               uuid.UUID     `json:"id"`
	PropertyID       uuid.UUID     `json:"property_id"`
	PropertyName     string        `json:"property_name"`
	PropertyHostID   uuid.UUID     `json:"property_host_id"`
	GuestID          uuid.UUID     `json:"guest_id"`
	CheckIn          time.Time     `json:"check_in"`
	CheckOut         time.Time     `json:"check_out"`
	Guests           int           `json:"guests"`
	Status           string        `json:"status"`
	Price            PriceView     `json:"price"`
	PaymentIntentRef *string       `json:"payment_intent_ref,omitempty"`
	CancelReason     *string       `json:"cancel_reason,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type PriceView struct {
	Nights           []NightLineView `json:"nights"`
	BaseTotalCents   int64           `json:"base_total_cents"`
	CleaningFeeCents int64           `json:"cleaning_fee_cents"`
	ServiceFeeCents  int64           `json:"service_fee_cents"`
	TotalCents       int64           `json:"total_cents"`
	Currency         string          `json:"currency"`
}

type NightLineView struct {
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"property_id"`
	PropertyName string    `json:"property_name"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

// AvailabilityView answers the pre-booking "is this probably available"
// question. It may be served from the short-TTL cache and is never the
// basis of a conflict decision.
type AvailabilityView struct {
	PropertyID      uuid.UUID        `json:"property_id"`
	CheckIn         time.Time        `json:"check_in"`
	CheckOut        time.Time        `json:"check_out"`
	AvailableNights []string         `json:"available_nights"`
	BlockedNights   []string         `json:"blocked_nights"`
	NightlyRates    map[string]int64 `json:"nightly_rates"`
	MinStayNights   int              `json:"min_stay_nights"`
}
