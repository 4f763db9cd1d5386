//go:build unit

package queries_test

import (
	"context"
	"testing"

	"staybook/internal/domain/auth"
	"staybook/internal/infra"
	"staybook/internal/usecase/queries"
	"staybook/tests/common/builder"
	queriesmock "staybook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBookingQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	b := builder.NewBookingBuilder()
	view := b.BuildViewQuery()

	tests := []struct {
		name      string
		principal auth.Principal
		wantErr   error
	}{
		{
			name:      "guest sees their own booking",
			principal: auth.Principal{UserID: b.GuestID, Role: auth.RoleGuest},
		},
		{
			name:      "host sees bookings on their property",
			principal: auth.Principal{UserID: b.HostID, Role: auth.RoleHost},
		},
		{
			name:      "admin sees everything",
			principal: auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin},
		},
		{
			name:      "other guest is rejected",
			principal: auth.Principal{UserID: uuid.New(), Role: auth.RoleGuest},
			wantErr:   queries.ErrNotBookingOwner,
		},
		{
			name:      "other host is rejected",
			principal: auth.Principal{UserID: uuid.New(), Role: auth.RoleHost},
			wantErr:   queries.ErrNotBookingOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := queriesmock.NewMockBookingReadStore(gomock.NewController(t))
			store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

			got, err := queries.NewBookingQueries(store).GetByID(ctx, tt.principal, view.ID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view, got)
		})
	}
}

func TestBookingQueries_GetByID_NotFound(t *testing.T) {
	store := queriesmock.NewMockBookingReadStore(gomock.NewController(t))
	id := uuid.New()
	store.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.WrapRepoErr("row not found", nil, infra.KindNotFound))

	principal := auth.Principal{UserID: uuid.New(), Role: auth.RoleAdmin}
	_, err := queries.NewBookingQueries(store).GetByID(context.Background(), principal, id)

	require.ErrorIs(t, err, queries.ErrBookingNotFound)
}

func TestBookingQueries_ListByGuest_LimitClamping(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int32
	}{
		{name: "zero falls back to the default", limit: 0, want: 50},
		{name: "negative falls back to the default", limit: -3, want: 50},
		{name: "over the cap falls back to the default", limit: 500, want: 50},
		{name: "just over the cap falls back to the default", limit: 51, want: 50},
		{name: "the cap itself passes through", limit: 50, want: 50},
		{name: "in-range value passes through", limit: 25, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := queriesmock.NewMockBookingReadStore(gomock.NewController(t))
			guestID := uuid.New()
			items := []*queries.BookingListItem{builder.NewBookingBuilder().BuildListItem()}
			store.EXPECT().FindByGuestID(gomock.Any(), guestID, tt.want).Return(items, nil)

			got, err := queries.NewBookingQueries(store).ListByGuest(context.Background(), guestID, tt.limit)

			require.NoError(t, err)
			assert.Equal(t, items, got)
		})
	}
}
