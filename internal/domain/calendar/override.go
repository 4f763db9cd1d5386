package calendar

import (
	"errors"
	"time"

	"staybook/internal/pkg/dates"
)

var (
	ErrNegativeMinStay = errors.New("minimum stay cannot be negative")
	ErrPastOverride    = errors.New("cannot override a past date")
)

// DayOverride is one explicit calendar record for a (property, date) pair.
// Absence of a record means available, no adjustment, default minimum stay.
// Upserts are last-write-wins on the whole record, never a field merge.
type DayOverride struct {
	date            time.Time
	available       bool
	adjustmentCents int64
	minStayNights   int
}

func NewDayOverride(date time.Time, available bool, adjustmentCents int64, minStayNights int) (DayOverride, error) {
	if minStayNights < 0 {
		return DayOverride{}, ErrNegativeMinStay
	}
	return DayOverride{
		date:            dates.Civil(date),
		available:       available,
		adjustmentCents: adjustmentCents,
		minStayNights:   minStayNights,
	}, nil
}

func (o DayOverride) Date() time.Time        { return o.date }
func (o DayOverride) Available() bool        { return o.available }
func (o DayOverride) AdjustmentCents() int64 { return o.adjustmentCents }
func (o DayOverride) MinStayNights() int     { return o.minStayNights }
