package readstore

import (
	"context"
	"encoding/json"

	"staybook/internal/infra"
	"staybook/internal/infra/dbtx"
	"staybook/internal/pkg/pgconv"
	"staybook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db dbtx.DBTX
}

func NewBookingReadStore(db dbtx.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const findBookingByIDSQL = `
SELECT b.id, b.property_id, p.name, p.host_id, b.guest_id,
       b.check_in, b.check_out, b.guests, b.status, b.price_snapshot,
       b.payment_intent_ref, b.cancel_reason, b.created_at, b.updated_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view                    queries.BookingView
		in, out                 pgtype.Date
		snapshotRaw             []byte
		intentRef, cancelReason pgtype.Text
		createdAt, updatedAt    pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&view.ID, &view.PropertyID, &view.PropertyName, &view.PropertyHostID, &view.GuestID,
		&in, &out, &view.Guests, &view.Status, &snapshotRaw,
		&intentRef, &cancelReason, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	if err := json.Unmarshal(snapshotRaw, &view.Price); err != nil {
		return nil, infra.WrapRepoErr("failed to decode price snapshot", err)
	}
	view.CheckIn = pgconv.DateFromPgtype(in)
	view.CheckOut = pgconv.DateFromPgtype(out)
	view.PaymentIntentRef = pgconv.StringPtrFromPgtype(intentRef)
	view.CancelReason = pgconv.StringPtrFromPgtype(cancelReason)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	return &view, nil
}

const findBookingsByGuestSQL = `
SELECT b.id, b.property_id, p.name, b.check_in, b.check_out, b.status,
       (b.price_snapshot->>'total_cents')::bigint, b.created_at
FROM bookings b
JOIN properties p ON p.id = b.property_id
WHERE b.guest_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2`

func (r *BookingReadStore) FindByGuestID(ctx context.Context, guestID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsByGuestSQL, guestID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by guest", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item      queries.BookingListItem
			in, out   pgtype.Date
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.PropertyID, &item.PropertyName, &in, &out, &item.Status, &item.TotalCents, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		item.CheckIn = pgconv.DateFromPgtype(in)
		item.CheckOut = pgconv.DateFromPgtype(out)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list rows", err)
	}

	return items, nil
}
