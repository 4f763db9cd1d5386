package response

import (
	"time"

	"staybook/internal/pkg/dates"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID               uuid.UUID     `json:"id"`
	PropertyID       uuid.UUID     `json:"propertyId"`
	PropertyName     string        `json:"propertyName"`
	GuestID          uuid.UUID     `json:"guestId"`
	CheckIn          string        `json:"checkIn"`
	CheckOut         string        `json:"checkOut"`
	Guests           int           `json:"guests"`
	Status           string        `json:"status"`
	Price            PriceResponse `json:"price"`
	CancelReason     *string       `json:"cancelReason,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

type PriceResponse struct {
	Nights           []NightLineResponse `json:"nights"`
	BaseTotalCents   int64               `json:"baseTotalCents"`
	CleaningFeeCents int64               `json:"cleaningFeeCents"`
	ServiceFeeCents  int64               `json:"serviceFeeCents"`
	TotalCents       int64               `json:"totalCents"`
	Currency         string              `json:"currency"`
}

type NightLineResponse struct {
	Date        string `json:"date"`
	AmountCents int64  `json:"amountCents"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	PropertyID   uuid.UUID `json:"propertyId"`
	PropertyName string    `json:"propertyName"`
	CheckIn      string    `json:"checkIn"`
	CheckOut     string    `json:"checkOut"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"totalCents"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UpdateBookingResponse struct {
	Booking              *BookingResponse `json:"booking"`
	PriceDifferenceCents int64            `json:"priceDifferenceCents"`
}

type CancelBookingResponse struct {
	Booking     *BookingResponse `json:"booking"`
	RefundCents int64            `json:"refundCents"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	nights := make([]NightLineResponse, len(rm.Price.Nights))
	for i, n := range rm.Price.Nights {
		nights[i] = NightLineResponse{Date: dates.Format(n.Date), AmountCents: n.AmountCents}
	}

	return &BookingResponse{
		ID:           rm.ID,
		PropertyID:   rm.PropertyID,
		PropertyName: rm.PropertyName,
		GuestID:      rm.GuestID,
		CheckIn:      dates.Format(rm.CheckIn),
		CheckOut:     dates.Format(rm.CheckOut),
		Guests:       rm.Guests,
		Status:       rm.Status,
		Price: PriceResponse{
			Nights:           nights,
			BaseTotalCents:   rm.Price.BaseTotalCents,
			CleaningFeeCents: rm.Price.CleaningFeeCents,
			ServiceFeeCents:  rm.Price.ServiceFeeCents,
			TotalCents:       rm.Price.TotalCents,
			Currency:         rm.Price.Currency,
		},
		CancelReason: rm.CancelReason,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:           rm.ID,
		PropertyID:   rm.PropertyID,
		PropertyName: rm.PropertyName,
		CheckIn:      dates.Format(rm.CheckIn),
		CheckOut:     dates.Format(rm.CheckOut),
		Status:       rm.Status,
		TotalCents:   rm.TotalCents,
		CreatedAt:    rm.CreatedAt,
	}
}
