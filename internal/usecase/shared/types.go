package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations

type PropertySnapshot struct {
	ID               uuid.UUID
	HostID           uuid.UUID
	Name             string
	NightlyRateCents int64
	CleaningFeeCents int64
	ServiceFeeCents  int64
	MaxGuests        int
}

// OccupiedRange is a pending/confirmed booking's occupied-night interval.
type OccupiedRange struct {
	BookingID uuid.UUID
	CheckIn   time.Time
	CheckOut  time.Time
}
