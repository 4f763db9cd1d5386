//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal interface required for test DB operations.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, role) VALUES ($1, $2, $3) ON CONFLICT (email) DO NOTHING",
		userID, email, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		err = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
		require.NoError(t, err)
	}

	return userID
}

func CreateTestProperty(t *testing.T, db DBLike, hostID uuid.UUID, name string, nightlyRateCents int64, maxGuests int) uuid.UUID {
	t.Helper()

	propertyID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO properties (id, host_id, name, nightly_rate_cents, cleaning_fee_cents, service_fee_cents, max_guests)
		VALUES ($1, $2, $3, $4, 6000, 5000, $5)`,
		propertyID, hostID, name, nightlyRateCents, maxGuests)
	require.NoError(t, err)

	return propertyID
}

func CreateTestOverride(t *testing.T, db DBLike, propertyID uuid.UUID, day time.Time, available bool, adjustmentCents int64, minStayNights int) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO calendar_days (property_id, day, available, adjustment_cents, min_stay_nights)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (property_id, day) DO UPDATE
		SET available = EXCLUDED.available,
		    adjustment_cents = EXCLUDED.adjustment_cents,
		    min_stay_nights = EXCLUDED.min_stay_nights,
		    updated_at = now()`,
		propertyID, day, available, adjustmentCents, minStayNights)
	require.NoError(t, err)
}

func BookingStatus(t *testing.T, db DBLike, bookingID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)
	return status
}

func NotificationTopics(t *testing.T, pool *pgxpool.Pool, bookingID uuid.UUID) []string {
	t.Helper()

	rows, err := pool.Query(context.Background(),
		"SELECT topic FROM notification_jobs WHERE payload->>'booking_id' = $1 ORDER BY created_at", bookingID.String())
	require.NoError(t, err)
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		require.NoError(t, rows.Scan(&topic))
		topics = append(topics, topic)
	}
	return topics
}

// ResetDB truncates every table so each subtest starts from a clean slate.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx,
		"TRUNCATE TABLE notification_jobs, bookings, calendar_days, properties, users RESTART IDENTITY CASCADE")
	return err
}
