package readstore

import (
	"context"
	"encoding/json"
	"time"

	"staybook/internal/domain/booking"
	"staybook/internal/domain/calendar"
	"staybook/internal/infra"
	"staybook/internal/infra/dbtx"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReads serves the write path. Bound to a transaction's DBTX it
// reads under the same isolation level as the commit.
type CommandReads struct {
	db dbtx.DBTX
}

func NewCommandReads(db dbtx.DBTX) *CommandReads {
	return &CommandReads{db: db}
}

const propertyByIDSQL = `
SELECT id, host_id, name, nightly_rate_cents, cleaning_fee_cents, service_fee_cents, max_guests
FROM properties
WHERE id = $1`

func (r *CommandReads) PropertyByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	var snap shared.PropertySnapshot
	err := r.db.QueryRow(ctx, propertyByIDSQL, id).Scan(
		&snap.ID,
		&snap.HostID,
		&snap.Name,
		&snap.NightlyRateCents,
		&snap.CleaningFeeCents,
		&snap.ServiceFeeCents,
		&snap.MaxGuests,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}

	return &snap, nil
}

const overridesForRangeSQL = `
SELECT day, available, adjustment_cents, min_stay_nights
FROM calendar_days
WHERE property_id = $1 AND day >= $2 AND day < $3
ORDER BY day`

func (r *CommandReads) OverridesForRange(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time) ([]calendar.DayOverride, error) {
	rows, err := r.db.Query(ctx, overridesForRangeSQL,
		propertyID,
		pgconv.DateToPgtype(checkIn),
		pgconv.DateToPgtype(checkOut),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query calendar overrides", err)
	}
	defer rows.Close()

	var overrides []calendar.DayOverride
	for rows.Next() {
		var (
			day             pgtype.Date
			available       bool
			adjustmentCents int64
			minStay         int
		)
		if err := rows.Scan(&day, &available, &adjustmentCents, &minStay); err != nil {
			return nil, infra.WrapRepoErr("failed to scan calendar override", err)
		}
		o, err := calendar.NewDayOverride(pgconv.DateFromPgtype(day), available, adjustmentCents, minStay)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid calendar override row", err)
		}
		overrides = append(overrides, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate calendar overrides", err)
	}

	return overrides, nil
}

const occupiedRangesSQL = `
SELECT id, check_in, check_out
FROM bookings
WHERE property_id = $1
  AND status IN ('pending', 'confirmed')
  AND check_in < $3
  AND check_out > $2
  AND ($4::uuid IS NULL OR id <> $4)
ORDER BY check_in`

// OccupiedRanges returns the pending/confirmed intervals intersecting
// [checkIn, checkOut). excludeBookingID lets an update treat the booking's
// own interval as non-occupying.
func (r *CommandReads) OccupiedRanges(ctx context.Context, propertyID uuid.UUID, checkIn, checkOut time.Time, excludeBookingID *uuid.UUID) ([]shared.OccupiedRange, error) {
	rows, err := r.db.Query(ctx, occupiedRangesSQL,
		propertyID,
		pgconv.DateToPgtype(checkIn),
		pgconv.DateToPgtype(checkOut),
		excludeBookingID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query occupied ranges", err)
	}
	defer rows.Close()

	var occupied []shared.OccupiedRange
	for rows.Next() {
		var (
			o       shared.OccupiedRange
			in, out pgtype.Date
		)
		if err := rows.Scan(&o.BookingID, &in, &out); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied range", err)
		}
		o.CheckIn = pgconv.DateFromPgtype(in)
		o.CheckOut = pgconv.DateFromPgtype(out)
		occupied = append(occupied, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate occupied ranges", err)
	}

	return occupied, nil
}

const bookingByIDSQL = `
SELECT id, property_id, guest_id, check_in, check_out, guests, status, price_snapshot, payment_intent_ref, cancel_reason, created_at, updated_at
FROM bookings
WHERE id = $1`

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		bid, propertyID, guestID uuid.UUID
		in, out                  pgtype.Date
		guests                   int
		status                   string
		snapshotRaw              []byte
		intentRef, cancelReason  pgtype.Text
		createdAt, updatedAt     pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, bookingByIDSQL, id).Scan(
		&bid, &propertyID, &guestID, &in, &out, &guests, &status,
		&snapshotRaw, &intentRef, &cancelReason, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	var snapshot booking.PriceSnapshot
	if err := json.Unmarshal(snapshotRaw, &snapshot); err != nil {
		return nil, infra.WrapRepoErr("failed to decode price snapshot", err)
	}

	return booking.ReconstructBooking(
		bid, propertyID, guestID,
		booking.ReconstructStayRange(pgconv.DateFromPgtype(in), pgconv.DateFromPgtype(out)),
		guests,
		booking.Status(status),
		snapshot,
		pgconv.StringPtrFromPgtype(intentRef),
		pgconv.StringPtrFromPgtype(cancelReason),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
