//go:build unit

package dates_test

import (
	"testing"
	"time"

	"staybook/internal/pkg/dates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCivil(t *testing.T) {
	in := time.Date(2025, 3, 10, 23, 59, 59, 999, time.FixedZone("JST", 9*3600))
	got := dates.Civil(in)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseFormat(t *testing.T) {
	got, err := dates.Parse("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", dates.Format(got))

	_, err = dates.Parse("10/03/2025")
	require.ErrorIs(t, err, dates.ErrInvalidDate)

	_, err = dates.Parse("2025-03-10T00:00:00Z")
	require.ErrorIs(t, err, dates.ErrInvalidDate)
}

func TestTomorrow(t *testing.T) {
	now := time.Date(2025, 3, 1, 23, 50, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), dates.Tomorrow(now))
}

func TestNights(t *testing.T) {
	in := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	out := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, dates.NightsBetween(in, out))

	nights := dates.Nights(in, out)
	require.Len(t, nights, 3)
	assert.Equal(t, in, nights[0])
	assert.Equal(t, out.AddDate(0, 0, -1), nights[2])

	assert.Nil(t, dates.Nights(out, in), "reversed range yields no nights")
	assert.Nil(t, dates.Nights(in, in), "empty range yields no nights")
}
