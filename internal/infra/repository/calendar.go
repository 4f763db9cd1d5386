package repository

import (
	"context"

	"staybook/internal/domain/calendar"
	"staybook/internal/infra"
	"staybook/internal/infra/dbtx"
	"staybook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CalendarRepository struct {
	db dbtx.DBTX
}

func NewCalendarRepository(db dbtx.DBTX) *CalendarRepository {
	return &CalendarRepository{db: db}
}

const upsertOverrideSQL = `
INSERT INTO calendar_days (property_id, day, available, adjustment_cents, min_stay_nights, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (property_id, day)
DO UPDATE SET
	available = EXCLUDED.available,
	adjustment_cents = EXCLUDED.adjustment_cents,
	min_stay_nights = EXCLUDED.min_stay_nights,
	updated_at = now()`

// UpsertOverrides replaces each day record wholesale; a later call for the
// same date wins on every field, never a merge.
func (r *CalendarRepository) UpsertOverrides(ctx context.Context, propertyID uuid.UUID, overrides []calendar.DayOverride) error {
	for _, o := range overrides {
		_, err := r.db.Exec(ctx, upsertOverrideSQL,
			propertyID,
			pgconv.DateToPgtype(o.Date()),
			o.Available(),
			o.AdjustmentCents(),
			o.MinStayNights(),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return infra.WrapRepoErr("property does not exist", err, infra.KindForeignKeyViolated)
			}
			return infra.WrapRepoErr("failed to upsert calendar day", err)
		}
	}
	return nil
}
