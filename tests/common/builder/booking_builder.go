//go:build unit || e2e

package builder

import (
	"time"

	dombooking "staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/domain/pricing"
	reqdto "staybook/internal/handler/dto/request"
	"staybook/internal/pkg/dates"
	"staybook/internal/usecase/queries"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingBuilder produces consistent fixtures around a fixed clock so
// lead-time validation behaves the same on every run.
type BookingBuilder struct {
	PropertyID       uuid.UUID
	PropertyName     string
	HostID           uuid.UUID
	GuestID          uuid.UUID
	Now              time.Time
	CheckIn          time.Time
	CheckOut         time.Time
	Guests           int
	NightlyRateCents int64
	CleaningFeeCents int64
	ServiceFeeCents  int64
	MaxGuests        int
	Currency         string
	Status           dombooking.Status
	PaymentIntentRef *string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		PropertyID:       uuid.New(),
		PropertyName:     "Seaside Cottage",
		HostID:           uuid.New(),
		GuestID:          uuid.New(),
		Now:              time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		CheckIn:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:         time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
		Guests:           2,
		NightlyRateCents: 15000,
		CleaningFeeCents: 6000,
		ServiceFeeCents:  5000,
		MaxGuests:        4,
		Currency:         "USD",
		Status:           dombooking.StatusPending,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods

func (b *BookingBuilder) BuildStay() (dombooking.StayRange, error) {
	return dombooking.NewStayRange(b.CheckIn, b.CheckOut, b.Now)
}

func (b *BookingBuilder) BuildWindow() calendar.Window {
	return calendar.BuildWindow(b.CheckIn, b.CheckOut, b.NightlyRateCents, nil, nil)
}

func (b *BookingBuilder) BuildSnapshot() dombooking.PriceSnapshot {
	stay := dombooking.ReconstructStayRange(b.CheckIn, b.CheckOut)
	return pricing.Quote(stay, b.NightlyRateCents, b.BuildWindow(), pricing.FeeSchedule{
		CleaningFeeCents: b.CleaningFeeCents,
		ServiceFeeCents:  b.ServiceFeeCents,
	}, b.Currency)
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	stay, err := b.BuildStay()
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.PropertyID, b.GuestID, stay, b.Guests, b.BuildSnapshot())
}

func (b *BookingBuilder) BuildReconstructed() *dombooking.Booking {
	stay := dombooking.ReconstructStayRange(b.CheckIn, b.CheckOut)
	return dombooking.ReconstructBooking(
		uuid.New(), b.PropertyID, b.GuestID,
		stay, b.Guests, b.Status, b.BuildSnapshot(),
		b.PaymentIntentRef, nil,
		b.Now, b.Now,
	)
}

func (b *BookingBuilder) BuildPropertySnapshot() *shared.PropertySnapshot {
	return &shared.PropertySnapshot{
		ID:               b.PropertyID,
		HostID:           b.HostID,
		Name:             b.PropertyName,
		NightlyRateCents: b.NightlyRateCents,
		CleaningFeeCents: b.CleaningFeeCents,
		ServiceFeeCents:  b.ServiceFeeCents,
		MaxGuests:        b.MaxGuests,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID: b.PropertyID,
		CheckIn:    dates.Format(b.CheckIn),
		CheckOut:   dates.Format(b.CheckOut),
		Guests:     b.Guests,
	}
}

func (b *BookingBuilder) BuildUpdateRequestDTO() reqdto.UpdateBookingRequest {
	checkIn := dates.Format(b.CheckIn)
	checkOut := dates.Format(b.CheckOut)
	guests := b.Guests
	return reqdto.UpdateBookingRequest{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Guests:   &guests,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	snapshot := b.BuildSnapshot()
	nights := make([]queries.NightLineView, len(snapshot.Nights))
	for i, n := range snapshot.Nights {
		nights[i] = queries.NightLineView{Date: n.Date, AmountCents: n.AmountCents}
	}

	return &queries.BookingView{
		ID:             uuid.New(),
		PropertyID:     b.PropertyID,
		PropertyName:   b.PropertyName,
		PropertyHostID: b.HostID,
		GuestID:        b.GuestID,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		Guests:         b.Guests,
		Status:         string(b.Status),
		Price: queries.PriceView{
			Nights:           nights,
			BaseTotalCents:   snapshot.BaseTotalCents,
			CleaningFeeCents: snapshot.CleaningFeeCents,
			ServiceFeeCents:  snapshot.ServiceFeeCents,
			TotalCents:       snapshot.TotalCents,
			Currency:         snapshot.Currency,
		},
		CreatedAt: b.Now,
		UpdatedAt: b.Now,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	snapshot := b.BuildSnapshot()
	return &queries.BookingListItem{
		ID:           uuid.New(),
		PropertyID:   b.PropertyID,
		PropertyName: b.PropertyName,
		CheckIn:      b.CheckIn,
		CheckOut:     b.CheckOut,
		Status:       string(b.Status),
		TotalCents:   snapshot.TotalCents,
		CreatedAt:    b.Now,
	}
}

// Fluent builder methods

func (b *BookingBuilder) WithPropertyID(id uuid.UUID) *BookingBuilder {
	b.PropertyID = id
	return b
}

func (b *BookingBuilder) WithGuestID(id uuid.UUID) *BookingBuilder {
	b.GuestID = id
	return b
}

func (b *BookingBuilder) WithHostID(id uuid.UUID) *BookingBuilder {
	b.HostID = id
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) WithDates(checkIn, checkOut time.Time) *BookingBuilder {
	b.CheckIn = checkIn
	b.CheckOut = checkOut
	return b
}

func (b *BookingBuilder) WithGuests(guests int) *BookingBuilder {
	b.Guests = guests
	return b
}

func (b *BookingBuilder) WithNightlyRate(cents int64) *BookingBuilder {
	b.NightlyRateCents = cents
	return b
}

func (b *BookingBuilder) WithFees(cleaningCents, serviceCents int64) *BookingBuilder {
	b.CleaningFeeCents = cleaningCents
	b.ServiceFeeCents = serviceCents
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithPaymentIntentRef(ref string) *BookingBuilder {
	b.PaymentIntentRef = &ref
	return b
}
