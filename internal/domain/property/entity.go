package property

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyPropertyName   = errors.New("property name cannot be empty")
	ErrPropertyNameTooLong = errors.New("property name is too long (max 255 characters)")
	ErrNegativeRate        = errors.New("nightly rate cannot be negative")
	ErrNegativeFee         = errors.New("fee cannot be negative")
	ErrInvalidMaxGuests    = errors.New("max guests must be at least 1")
)

const MaxPropertyNameLength = 255

// Property is the bookable resource as published by the listing catalog.
// Rate and fee fields may change between bookings but never retroactively
// alter an already-priced booking; the booking keeps its own snapshot.
type Property struct {
	id               uuid.UUID
	hostID           uuid.UUID
	name             string
	nightlyRateCents int64
	cleaningFeeCents int64
	serviceFeeCents  int64
	maxGuests        int
	createdAt        time.Time
	updatedAt        time.Time
}

func NewProperty(id, hostID uuid.UUID, name string, nightlyRateCents, cleaningFeeCents, serviceFeeCents int64, maxGuests int) (*Property, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyPropertyName
	}
	if len(name) > MaxPropertyNameLength {
		return nil, ErrPropertyNameTooLong
	}
	if nightlyRateCents < 0 {
		return nil, ErrNegativeRate
	}
	if cleaningFeeCents < 0 || serviceFeeCents < 0 {
		return nil, ErrNegativeFee
	}
	if maxGuests < 1 {
		return nil, ErrInvalidMaxGuests
	}

	return &Property{
		id:               id,
		hostID:           hostID,
		name:             name,
		nightlyRateCents: nightlyRateCents,
		cleaningFeeCents: cleaningFeeCents,
		serviceFeeCents:  serviceFeeCents,
		maxGuests:        maxGuests,
	}, nil
}

func (p *Property) FitsGuests(count int) bool {
	return count >= 1 && count <= p.maxGuests
}

func (p *Property) IsOwnedBy(hostID uuid.UUID) bool {
	return p.hostID == hostID
}

func (p *Property) ID() uuid.UUID           { return p.id }
func (p *Property) HostID() uuid.UUID       { return p.hostID }
func (p *Property) Name() string            { return p.name }
func (p *Property) NightlyRateCents() int64 { return p.nightlyRateCents }
func (p *Property) CleaningFeeCents() int64 { return p.cleaningFeeCents }
func (p *Property) ServiceFeeCents() int64  { return p.serviceFeeCents }
func (p *Property) MaxGuests() int          { return p.maxGuests }
func (p *Property) CreatedAt() time.Time    { return p.createdAt }
func (p *Property) UpdatedAt() time.Time    { return p.updatedAt }
