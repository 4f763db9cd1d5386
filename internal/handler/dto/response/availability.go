package response

import (
	"staybook/internal/pkg/dates"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	PropertyID      uuid.UUID        `json:"propertyId"`
	CheckIn         string           `json:"checkIn"`
	CheckOut        string           `json:"checkOut"`
	AvailableNights []string         `json:"availableNights"`
	BlockedNights   []string         `json:"blockedNights"`
	NightlyRates    map[string]int64 `json:"nightlyRates"`
	MinStayNights   int              `json:"minStayNights"`
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	return &AvailabilityResponse{
		PropertyID:      rm.PropertyID,
		CheckIn:         dates.Format(rm.CheckIn),
		CheckOut:        dates.Format(rm.CheckOut),
		AvailableNights: rm.AvailableNights,
		BlockedNights:   rm.BlockedNights,
		NightlyRates:    rm.NightlyRates,
		MinStayNights:   rm.MinStayNights,
	}
}
