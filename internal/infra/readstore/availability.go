package readstore

import (
	"context"
	"time"

	"staybook/internal/domain/calendar"
	"staybook/internal/infra/dbtx"
	"staybook/internal/pkg/dates"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
)

// AvailabilityReadStore computes availability windows straight from the
// store. The redis read-through cache decorates it for the read path; the
// write path goes through CommandReads inside the transaction instead.
type AvailabilityReadStore struct {
	reads *CommandReads
}

func NewAvailabilityReadStore(db dbtx.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{reads: NewCommandReads(db)}
}

func (r *AvailabilityReadStore) Window(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) (*queries.AvailabilityView, error) {
	property, err := r.reads.PropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	overrides, err := r.reads.OverridesForRange(ctx, propertyID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	occupied, err := r.reads.OccupiedRanges(ctx, propertyID, checkIn, checkOut, nil)
	if err != nil {
		return nil, err
	}

	var occupiedNights []time.Time
	for _, o := range occupied {
		occupiedNights = append(occupiedNights, dates.Nights(o.CheckIn, o.CheckOut)...)
	}

	window := calendar.BuildWindow(checkIn, checkOut, property.NightlyRateCents, overrides, occupiedNights)

	view := &queries.AvailabilityView{
		PropertyID:      propertyID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		AvailableNights: formatNights(window.AvailableNights),
		BlockedNights:   formatNights(window.BlockedNights),
		NightlyRates:    window.NightlyRates,
		MinStayNights:   window.MinStayNights,
	}
	return view, nil
}

func formatNights(nights []time.Time) []string {
	out := make([]string, len(nights))
	for i, n := range nights {
		out[i] = dates.Format(n)
	}
	return out
}
