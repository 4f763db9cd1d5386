package repository

import (
	"context"
	"encoding/json"

	"staybook/internal/domain/booking"
	"staybook/internal/infra"
	"staybook/internal/infra/dbtx"
	"staybook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type BookingRepository struct {
	db dbtx.DBTX
}

func NewBookingRepository(db dbtx.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const createBookingSQL = `
INSERT INTO bookings (id, property_id, guest_id, check_in, check_out, guests, status, price_snapshot, payment_intent_ref, cancel_reason)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	snapshot, err := json.Marshal(b.Price())
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode price snapshot", err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.PropertyID(),
		b.GuestID(),
		pgconv.DateToPgtype(b.Stay().CheckIn()),
		pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.Guests(),
		b.Status().String(),
		snapshot,
		pgconv.StringPtrToPgtype(b.PaymentIntentRef()),
		pgconv.StringPtrToPgtype(b.CancelReason()),
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("property does not exist", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

const replaceSnapshotSQL = `
UPDATE bookings
SET check_in = $2, check_out = $3, guests = $4, price_snapshot = $5, updated_at = now()
WHERE id = $1`

func (r *BookingRepository) ReplaceSnapshot(ctx context.Context, b *booking.Booking) error {
	snapshot, err := json.Marshal(b.Price())
	if err != nil {
		return infra.WrapRepoErr("failed to encode price snapshot", err)
	}

	tag, err := r.db.Exec(ctx, replaceSnapshotSQL,
		b.ID(),
		pgconv.DateToPgtype(b.Stay().CheckIn()),
		pgconv.DateToPgtype(b.Stay().CheckOut()),
		b.Guests(),
		snapshot,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to replace booking snapshot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

const updateStatusSQL = `
UPDATE bookings
SET status = $3, cancel_reason = COALESCE($4, cancel_reason), updated_at = now()
WHERE id = $1 AND status = $2`

// UpdateStatus is a compare-and-swap on the status column. Zero rows
// affected means the stored status no longer matches the expected one.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status, cancelReason *string) error {
	tag, err := r.db.Exec(ctx, updateStatusSQL,
		id,
		from.String(),
		to.String(),
		pgconv.StringPtrToPgtype(cancelReason),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}

	return nil
}

const setPaymentIntentRefSQL = `
UPDATE bookings
SET payment_intent_ref = $2, updated_at = now()
WHERE id = $1`

func (r *BookingRepository) SetPaymentIntentRef(ctx context.Context, id uuid.UUID, ref string) error {
	tag, err := r.db.Exec(ctx, setPaymentIntentRefSQL, id, ref)
	if err != nil {
		return infra.WrapRepoErr("failed to set payment intent ref", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !asPgError(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23503"
}
