//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"staybook/internal/usecase/queries"
	queriesmock "staybook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAvailabilityQueries_Check(t *testing.T) {
	ctx := context.Background()
	propertyID := uuid.New()
	checkIn := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	t.Run("delegates to the reader with civil dates", func(t *testing.T) {
		reader := queriesmock.NewMockAvailabilityReader(gomock.NewController(t))
		view := &queries.AvailabilityView{
			PropertyID:      propertyID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			AvailableNights: []string{"2025-03-10", "2025-03-11", "2025-03-12"},
			MinStayNights:   1,
		}
		reader.EXPECT().Window(gomock.Any(), propertyID, checkIn, checkOut).Return(view, nil)

		got, err := queries.NewAvailabilityQueries(reader).Check(ctx, propertyID, checkIn, checkOut)

		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("drops the time of day before delegating", func(t *testing.T) {
		reader := queriesmock.NewMockAvailabilityReader(gomock.NewController(t))
		reader.EXPECT().Window(gomock.Any(), propertyID, checkIn, checkOut).Return(&queries.AvailabilityView{}, nil)

		_, err := queries.NewAvailabilityQueries(reader).Check(ctx, propertyID,
			checkIn.Add(15*time.Hour), checkOut.Add(30*time.Minute))

		require.NoError(t, err)
	})

	t.Run("rejects a reversed range", func(t *testing.T) {
		reader := queriesmock.NewMockAvailabilityReader(gomock.NewController(t))

		_, err := queries.NewAvailabilityQueries(reader).Check(ctx, propertyID, checkOut, checkIn)

		require.ErrorIs(t, err, queries.ErrInvalidDateRange)
	})

	t.Run("rejects a zero-night range", func(t *testing.T) {
		reader := queriesmock.NewMockAvailabilityReader(gomock.NewController(t))

		_, err := queries.NewAvailabilityQueries(reader).Check(ctx, propertyID, checkIn, checkIn)

		require.ErrorIs(t, err, queries.ErrInvalidDateRange)
	})
}
