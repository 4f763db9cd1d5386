//go:build unit

package calendar_test

import (
	"testing"
	"time"

	"staybook/internal/domain/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustOverride(t *testing.T, day time.Time, available bool, adjustment int64, minStay int) calendar.DayOverride {
	t.Helper()
	o, err := calendar.NewDayOverride(day, available, adjustment, minStay)
	require.NoError(t, err)
	return o
}

func TestNewDayOverride(t *testing.T) {
	t.Run("negative minimum stay rejected", func(t *testing.T) {
		_, err := calendar.NewDayOverride(date(2025, 3, 10), true, 0, -1)
		require.ErrorIs(t, err, calendar.ErrNegativeMinStay)
	})

	t.Run("time component dropped", func(t *testing.T) {
		o, err := calendar.NewDayOverride(time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC), false, 500, 2)
		require.NoError(t, err)
		assert.Equal(t, date(2025, 3, 10), o.Date())
		assert.False(t, o.Available())
		assert.Equal(t, int64(500), o.AdjustmentCents())
		assert.Equal(t, 2, o.MinStayNights())
	})
}

func TestBuildWindow(t *testing.T) {
	checkIn := date(2025, 3, 10)
	checkOut := date(2025, 3, 14) // 4 nights

	t.Run("no overrides, nothing occupied", func(t *testing.T) {
		w := calendar.BuildWindow(checkIn, checkOut, 10000, nil, nil)

		assert.Len(t, w.AvailableNights, 4)
		assert.Empty(t, w.BlockedNights)
		assert.True(t, w.AllAvailable())
		assert.Equal(t, calendar.DefaultMinStayNights, w.MinStayNights)
		assert.Equal(t, int64(10000), w.NightlyRates["2025-03-11"])
	})

	t.Run("unavailable override blocks its night", func(t *testing.T) {
		overrides := []calendar.DayOverride{
			mustOverride(t, date(2025, 3, 12), false, 0, 0),
		}
		w := calendar.BuildWindow(checkIn, checkOut, 10000, overrides, nil)

		assert.Len(t, w.AvailableNights, 3)
		require.Len(t, w.BlockedNights, 1)
		assert.Equal(t, date(2025, 3, 12), w.BlockedNights[0])
		assert.False(t, w.AllAvailable())
	})

	t.Run("occupied nights block regardless of overrides", func(t *testing.T) {
		w := calendar.BuildWindow(checkIn, checkOut, 10000, nil, []time.Time{date(2025, 3, 10), date(2025, 3, 11)})

		assert.Len(t, w.BlockedNights, 2)
		assert.Len(t, w.AvailableNights, 2)
	})

	t.Run("strictest minimum stay wins", func(t *testing.T) {
		overrides := []calendar.DayOverride{
			mustOverride(t, date(2025, 3, 10), true, 0, 2),
			mustOverride(t, date(2025, 3, 11), true, 0, 5),
			mustOverride(t, date(2025, 3, 12), true, 0, 3),
		}
		w := calendar.BuildWindow(checkIn, checkOut, 10000, overrides, nil)

		assert.Equal(t, 5, w.MinStayNights)
	})

	t.Run("adjustment applies and floors at zero", func(t *testing.T) {
		overrides := []calendar.DayOverride{
			mustOverride(t, date(2025, 3, 10), true, 2500, 0),
			mustOverride(t, date(2025, 3, 11), true, -99999, 0),
		}
		w := calendar.BuildWindow(checkIn, checkOut, 10000, overrides, nil)

		assert.Equal(t, int64(12500), w.NightlyRates["2025-03-10"])
		assert.Equal(t, int64(0), w.NightlyRates["2025-03-11"])
		assert.Equal(t, int64(10000), w.NightlyRates["2025-03-12"])
	})

	t.Run("override outside the range is ignored", func(t *testing.T) {
		overrides := []calendar.DayOverride{
			mustOverride(t, date(2025, 4, 1), false, 0, 9),
		}
		w := calendar.BuildWindow(checkIn, checkOut, 10000, overrides, nil)

		assert.True(t, w.AllAvailable())
		assert.Equal(t, calendar.DefaultMinStayNights, w.MinStayNights)
	})
}

func TestWindow_RateFor(t *testing.T) {
	w := calendar.BuildWindow(date(2025, 3, 10), date(2025, 3, 12), 8000, nil, nil)

	assert.Equal(t, int64(8000), w.RateFor(date(2025, 3, 10), 8000))
	// outside the window: falls back to the base rate passed in
	assert.Equal(t, int64(9000), w.RateFor(date(2025, 5, 1), 9000))
}
