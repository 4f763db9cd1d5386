//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"staybook/internal/domain/auth"
	"staybook/internal/handler/api"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/usecase/commands"
	"staybook/internal/usecase/queries"
	"staybook/tests/common/builder"
	"staybook/tests/common/httptest"
	"staybook/tests/common/testutil"
	commandsmock "staybook/tests/mock/commands"
	queriesmock "staybook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	principal    auth.Principal
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.principal = auth.Principal{UserID: uuid.New(), Role: auth.RoleGuest}

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("principal", s.principal)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.PATCH("/bookings/:id", authMiddleware, s.handler.UpdateBooking)
	s.router.POST("/bookings/:id/confirm", authMiddleware, s.handler.ConfirmPayment)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.CancelBooking)
	s.router.POST("/bookings/:id/decline", authMiddleware, s.handler.DeclineBooking)
	s.router.POST("/bookings/:id/complete", authMiddleware, s.handler.CompleteBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildViewQuery()

	validation := []testCaseBooking{
		{name: "missing field: property_id (required)", mutate: testutil.Field("property_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: check_in (required)", mutate: testutil.Field("check_in", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: check_out (required)", mutate: testutil.Field("check_out", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: guests (required)", mutate: testutil.Field("guests", nil), expectCode: http.StatusBadRequest},
		{name: "guests below minimum (0)", mutate: testutil.Field("guests", 0), expectCode: http.StatusBadRequest},
		{name: "malformed check_in date", mutate: testutil.Field("check_in", "10/03/2025"), expectCode: http.StatusBadRequest},
		{name: "malformed check_out date", mutate: testutil.Field("check_out", "2025-3-13"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.principal, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal("pending", body.Status)
		s.Equal(int64(56000), body.Price.TotalCents)
		s.Equal("2025-03-10", body.CheckIn)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				payload := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, payload, "bearer-token")
				s.Equal(tc.expectCode, rec.Code)
			})
		}
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 409 Conflict carries the blocked nights", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), s.principal, gomock.Any()).
			Return(nil, &commands.ConflictError{Nights: []string{"2025-03-11", "2025-03-12"}}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body struct {
			Error             string   `json:"error"`
			ConflictingNights []string `json:"conflicting_nights"`
		}
		s.Equal(http.StatusConflict, rec.Code)
		httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.Equal([]string{"2025-03-11", "2025-03-12"}, body.ConflictingNights)
	})

	commandErrors := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "property not found", err: commands.ErrPropertyNotFound, expectCode: http.StatusNotFound},
		{name: "guest count exceeded", err: commands.ErrGuestCountExceeded, expectCode: http.StatusUnprocessableEntity},
		{name: "minimum stay not met", err: commands.ErrMinStayNotMet, expectCode: http.StatusUnprocessableEntity},
		{name: "stay validation failed", err: commands.ErrValidation, expectCode: http.StatusUnprocessableEntity},
		{name: "payment declined", err: commands.ErrPaymentDeclined, expectCode: http.StatusPaymentRequired},
		{name: "serialization retries exhausted", err: commands.ErrTransientStore, expectCode: http.StatusServiceUnavailable},
		{name: "unexpected failure", err: errors.New("boom"), expectCode: http.StatusInternalServerError},
	}

	for _, tc := range commandErrors {
		s.Run("error mapping: "+tc.name, func() {
			s.mockCommands.EXPECT().Create(gomock.Any(), s.principal, gomock.Any()).
				Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}

// ================================================================================
// TestUpdateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	reqBody := builder.NewBookingBuilder().BuildUpdateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildViewQuery()

	s.Run("success: returns 200 with the price difference", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), s.principal, bookingID, gomock.Any()).
			Return(&commands.UpdateBookingResult{Booking: returnView, PriceDifferenceCents: 15000}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var body resdto.UpdateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID, body.Booking.ID)
		s.Equal(int64(15000), body.PriceDifferenceCents)
	})

	s.Run("error: 400 on a malformed booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/not-a-uuid", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 400 on a malformed date", func() {
		payload := testutil.DtoMap(s.T(), reqBody, testutil.Field("check_in", "March 10"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, payload, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	commandErrors := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "booking not found", err: commands.ErrBookingNotFound, expectCode: http.StatusNotFound},
		{name: "not the booking owner", err: commands.ErrNotAllowed, expectCode: http.StatusForbidden},
		{name: "already terminal", err: commands.ErrAlreadyTerminal, expectCode: http.StatusConflict},
	}

	for _, tc := range commandErrors {
		s.Run("error mapping: "+tc.name, func() {
			s.mockCommands.EXPECT().Update(gomock.Any(), s.principal, bookingID, gomock.Any()).
				Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	returnView := builder.NewBookingBuilder().BuildViewQuery()

	s.Run("success: returns 200 with the refund amount", func() {
		reason := "plans changed"
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.principal, bookingID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ auth.Principal, _ uuid.UUID, got *string) (*commands.CancelBookingResult, error) {
				s.Require().NotNil(got)
				s.Equal(reason, *got)
				return &commands.CancelBookingResult{Booking: returnView, RefundCents: 51000}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": reason}, "bearer-token")

		var body resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(51000), body.RefundCents)
	})

	s.Run("success: an empty body cancels without a reason", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.principal, bookingID, nil).
			Return(&commands.CancelBookingResult{Booking: returnView, RefundCents: 25500}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(25500), body.RefundCents)
	})

	s.Run("error: 502 when the refund gateway fails", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.principal, bookingID, nil).
			Return(nil, commands.ErrRefundFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Refund request failed")
	})

	s.Run("error: 409 when already terminal", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), s.principal, bookingID, nil).
			Return(nil, commands.ErrAlreadyTerminal).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}

// ================================================================================
// TestConfirmPayment
// ================================================================================

func (s *BookingHandlerTestSuite) TestConfirmPayment() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/confirm"

	s.Run("success: returns 200 with the confirmed booking", func() {
		returnView := builder.NewBookingBuilder().BuildViewQuery()
		returnView.Status = "confirmed"
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), s.principal, bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
	})

	s.Run("error: 402 when the capture is declined", func() {
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), s.principal, bookingID).
			Return(nil, commands.ErrPaymentDeclined).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "Payment was declined")
	})

	s.Run("error: 409 when not pending", func() {
		s.mockCommands.EXPECT().ConfirmPayment(gomock.Any(), s.principal, bookingID).
			Return(nil, commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}

// ================================================================================
// TestDeclineBooking / TestCompleteBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestDeclineBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/decline"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Decline(gomock.Any(), s.principal, bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 when the caller is not the host", func() {
		s.mockCommands.EXPECT().Decline(gomock.Any(), s.principal, bookingID).
			Return(commands.ErrNotAllowed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not allowed")
	})
}

func (s *BookingHandlerTestSuite) TestCompleteBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/complete"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), s.principal, bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 before checkout has passed", func() {
		s.mockCommands.EXPECT().Complete(gomock.Any(), s.principal, bookingID).
			Return(commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})
}

// ================================================================================
// TestGetBooking / TestListBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	returnView := builder.NewBookingBuilder().BuildViewQuery()
	url := "/bookings/" + returnView.ID.String()

	s.Run("success: returns 200 with the booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.principal, returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID, body.ID)
		s.Len(body.Price.Nights, 3)
	})

	s.Run("error: 404 when the booking does not exist", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.principal, returnView.ID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 for someone else's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.principal, returnView.ID).
			Return(nil, queries.ErrNotBookingOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	url := "/bookings"

	s.Run("success: returns the guest's bookings", func() {
		items := []*queries.BookingListItem{
			builder.NewBookingBuilder().BuildListItem(),
			builder.NewBookingBuilder().BuildListItem(),
		}
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.principal.UserID, 0).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
	})

	s.Run("success: passes an explicit limit through", func() {
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.principal.UserID, 10).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=10", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on a non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=lots", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})
}
